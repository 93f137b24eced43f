package db

import "errors"

// Sentinel errors for database operations.
var (
	// ErrInvalidConfig is returned when the connection string cannot be parsed.
	ErrInvalidConfig = errors.New("db: invalid connection configuration")
	// ErrConnect is returned when no connection succeeds within the retry budget.
	ErrConnect = errors.New("db: cannot connect")
	// ErrUnavailable is returned by health checks when the pool is missing or unreachable.
	ErrUnavailable = errors.New("db: database unavailable")
	// ErrMigrate wraps schema migration failures.
	ErrMigrate = errors.New("db: migration failed")
)
