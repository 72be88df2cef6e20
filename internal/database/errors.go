package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrSchemaMissing    = errors.New("schema not initialized")
)

// StoreError wraps a connection or statement failure. It matches
// ErrStoreUnavailable with errors.Is and unwraps to the driver error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrStoreUnavailable, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}

// Wrap converts a raw store error into the error taxonomy: missing tables
// become ErrSchemaMissing, everything else a *StoreError. Errors that are
// already classified pass through unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrSchemaMissing) {
		return err
	}
	if IsMissingTable(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrSchemaMissing, err)
	}
	return &StoreError{Op: op, Err: err}
}

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsMissingTable reports whether err was caused by querying a table that doesn't exist.
func IsMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
