package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces cache keys in a shared Redis database.
const DefaultRedisPrefix = "lingo:cache"

// Redis is a cache shared by every process that points at the same Redis
// database, so one reload serves a whole fleet.
type Redis[V any] struct {
	client     redis.UniversalClient
	marshaler  Marshaler[V]
	prefix     string
	defaultTTL time.Duration
}

// RedisOption configures a Redis cache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix     string
	defaultTTL time.Duration
}

// WithPrefix sets the key prefix. Keys are stored as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(c *redisConfig) { c.prefix = prefix }
}

// WithRedisDefaultTTL sets the lifetime used when Set gets a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(c *redisConfig) { c.defaultTTL = d }
}

// NewRedis creates a Redis-backed cache. Values pass through m, which must not
// be nil.
//
//	c := cache.NewRedis(client, source.TreeMarshaler{}, cache.WithRedisDefaultTTL(time.Minute))
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	if m == nil {
		panic("cache: nil marshaler")
	}
	cfg := redisConfig{prefix: DefaultRedisPrefix, defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Redis[V]{client: client, marshaler: m, prefix: cfg.prefix, defaultTTL: cfg.defaultTTL}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	v, err := r.marshaler.Unmarshal(data)
	if err != nil {
		return zero, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	// Redis reads a zero expiration as "keep forever".
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Clear deletes every key under the prefix, scanning instead of blocking the
// server with KEYS.
func (r *Redis[V]) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Close is a no-op; the client is closed by its owner.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(k string) string {
	return r.prefix + ":" + k
}

var _ Cache[any] = (*Redis[any])(nil)
