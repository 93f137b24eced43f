package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a key has no live entry.
	ErrNotFound = errors.New("cache: entry not found")
	// ErrClosed is returned by writes after Close.
	ErrClosed = errors.New("cache: closed")
	// ErrMarshal wraps failures encoding a value for storage.
	ErrMarshal = errors.New("cache: failed to marshal value")
	// ErrUnmarshal wraps failures decoding a stored value.
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")
)
