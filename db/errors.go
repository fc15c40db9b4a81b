package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun/driver/pgdriver"
)

// SQLSTATE for unique_violation.
const uniqueViolation = "23505"

var (
	// ErrNotFound is returned when a lookup by public id, document or name matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write hits a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)

// ReferenceError reports a named foreign entity that does not exist.
type ReferenceError struct {
	Entity string
	Name   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Name)
}

// translate maps driver errors onto the package's error values.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.Field('n'))
	}
	return err
}
