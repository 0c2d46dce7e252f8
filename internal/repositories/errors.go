package repositories

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It wraps more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when a write references or is referenced by a
	// row that blocks it (dangling or still-referenced foreign key).
	ErrForeignKey = errors.New("foreign key constraint violation")
)

// SQLExecutor is satisfied by *sql.DB and *sql.Tx, so repository write methods
// can run inside transactions or against the pool directly.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is satisfied by *sql.Row and *sql.Rows, for shared scanning helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}
