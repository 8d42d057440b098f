package database

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// NullDate maps a nullable DATE column to a calendar date.
type NullDate struct {
	Date  civil.Date
	Valid bool
}

func NewNullDate(d *civil.Date) NullDate {
	if d == nil {
		return NullDate{}
	}
	return NullDate{Date: *d, Valid: true}
}

func (nd *NullDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*nd = NullDate{}
		return nil
	case time.Time:
		*nd = NullDate{Date: civil.DateOf(v), Valid: true}
		return nil
	case string:
		return nd.parse(v)
	case []byte:
		return nd.parse(string(v))
	default:
		return fmt.Errorf("database: cannot scan %T into NullDate", src)
	}
}

func (nd *NullDate) parse(s string) error {
	d, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("database: parse date: %w", err)
	}
	*nd = NullDate{Date: d, Valid: true}
	return nil
}

// Value writes the date as YYYY-MM-DD so no time zone is involved.
func (nd NullDate) Value() (driver.Value, error) {
	if !nd.Valid {
		return nil, nil
	}
	return nd.Date.String(), nil
}

func (nd NullDate) Ptr() *civil.Date {
	if !nd.Valid {
		return nil
	}
	d := nd.Date
	return &d
}
