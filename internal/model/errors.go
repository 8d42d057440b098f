package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrExists           = errors.New("already exists")
	ErrInvalidReference = errors.New("invalid reference")
	ErrNoGeneratedKey   = errors.New("no generated key returned")
)

func NewError(model string, err error) error {
	return fmt.Errorf("%s: %w", strings.ToLower(model), err)
}

// StorageError reports a failed statement against the backing store.
// Op names the operation, e.g. "create todo".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
