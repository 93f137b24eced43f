// Package redis connects the Redis client behind the Redis translation source
// and the shared view cache.
//
// It wraps [github.com/redis/go-redis/v9] with environment-driven
// configuration, startup retries and a readiness check:
//
//	client, err := redis.Connect(ctx, redis.DefaultConfig(os.Getenv("LINGO_REDIS_URL")))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	src := source.NewRedis(client, "lingo")
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
//
// Both redis:// and rediss:// (TLS) URLs are accepted. Startup failures wrap
// [ErrConnectionFailed] together with the last ping error.
package redis
