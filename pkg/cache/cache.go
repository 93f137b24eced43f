package cache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds loaded translation content between reloads.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
type Cache[V any] interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every entry the cache owns.
	Clear(ctx context.Context) error
	Close() error
}

// Marshaler converts values to and from bytes for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

var flights singleflight.Group

// GetOrSet returns the cached value for key, or calls fn on a miss and stores
// its result. Concurrent misses for the same cache and key share one call.
// Errors from fn are returned and nothing is stored.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := flights.Do(fmt.Sprintf("%p|%s", c, key), func() (any, error) {
		if v, err := c.Get(ctx, key); err == nil {
			return v, nil
		}
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// A failed Set only costs a later reload.
		_ = c.Set(ctx, key, val, ttl)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
