// Package cache keeps loaded translation content between reloads.
//
// [Memory] is process-local with optional LRU capacity. [Redis] is shared by
// every process pointed at the same database, so one load serves a fleet.
// Both implement [Cache]; values reach Redis through a [Marshaler]:
//
//	c := cache.NewRedis(client, source.TreeMarshaler{},
//		cache.WithPrefix("lingo:cache"),
//		cache.WithRedisDefaultTTL(5*time.Minute),
//	)
//
// [GetOrSet] loads a missing value once no matter how many goroutines ask
// for it at the same time:
//
//	trees, err := cache.GetOrSet(ctx, c, "trees", func(ctx context.Context) (map[string]locale.Tree, time.Duration, error) {
//		trees, err := src.Load(ctx)
//		return trees, 0, err
//	})
//
// Misses are reported with [ErrNotFound]; writes to a closed [Memory] fail
// with [ErrClosed].
package cache
