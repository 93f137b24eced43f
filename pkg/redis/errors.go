package redis

import "errors"

// Sentinel errors for redis connections.
var (
	// ErrInvalidURL is returned when the connection URL cannot be parsed.
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrConnectionFailed is returned when the server never answers a ping.
	ErrConnectionFailed = errors.New("redis: failed to establish connection")
	// ErrUnavailable is returned by health checks when the client is missing or unreachable.
	ErrUnavailable = errors.New("redis: server unavailable")
)
