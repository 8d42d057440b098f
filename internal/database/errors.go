package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/protomem/todoit/internal/model"
)

const (
	_mysqlDuplicateEntry        = 1062
	_mysqlRowIsReferenced       = 1451
	_mysqlNoReferencedRow       = 1452
	_mysqlNoReferencedRowLegacy = 1216
)

func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == _mysqlDuplicateEntry
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case _mysqlRowIsReferenced, _mysqlNoReferencedRow, _mysqlNoReferencedRowLegacy:
			return true
		}
	}
	return false
}

// storageError wraps a driver failure with the operation that produced it.
// Constraint violations also carry the matching model sentinel.
func storageError(op string, err error) error {
	switch {
	case IsUniqueViolation(err):
		err = fmt.Errorf("%w: %w", model.ErrExists, err)
	case IsForeignKeyViolation(err):
		err = fmt.Errorf("%w: %w", model.ErrInvalidReference, err)
	}
	return &model.StorageError{Op: op, Err: err}
}
