package repositories

import "errors"

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError wraps unexpected database errors so callers can
	// distinguish upstream store failures from empty results.
	ErrDatabaseError = errors.New("database error")
)
