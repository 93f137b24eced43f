package redis

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness check that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("%w: no client", ErrUnavailable)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil
	}
}

// Shutdown returns a hook that closes client. The serve command runs it after
// the HTTP server has drained.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		if client == nil {
			return nil
		}
		return client.Close()
	}
}
