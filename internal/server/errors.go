package server

import "errors"

// Sentinel errors for server startup.
var (
	// ErrNoHandler is returned by Run when no handler was set.
	ErrNoHandler = errors.New("server: no handler configured")
	// ErrListen wraps failures binding the listen address.
	ErrListen = errors.New("server: failed to listen")
)
