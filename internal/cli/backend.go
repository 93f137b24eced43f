package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/lingo/pkg/db"
	"github.com/dmitrymomot/lingo/pkg/health"
	"github.com/dmitrymomot/lingo/pkg/redis"
	"github.com/dmitrymomot/lingo/pkg/source"
)

// Source kinds accepted by --source.
const (
	sourceFS       = "fs"
	sourcePostgres = "postgres"
	sourceRedis    = "redis"
	sourceS3       = "s3"
)

// writer is implemented by stores that accept single namespaces.
type writer interface {
	Put(ctx context.Context, lang, namespace string, content map[string]any) error
}

// backend is an opened source with the connections behind it.
type backend struct {
	kind   string
	src    source.Source
	pool   *pgxpool.Pool
	client goredis.UniversalClient
	checks health.Checks
	close  []func(context.Context) error
}

// Close releases every connection the backend opened.
func (b *backend) Close(ctx context.Context) error {
	var errs []error
	for _, fn := range b.close {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openBackend opens the source selected by --source.
func (a *app) openBackend(ctx context.Context) (*backend, error) {
	b := &backend{kind: a.v.GetString(keySource), checks: health.Checks{}}

	switch b.kind {
	case sourceFS:
		b.src = source.Dir(a.v.GetString(keyDir))

	case sourcePostgres:
		pool, err := a.openPostgres(ctx)
		if err != nil {
			return nil, err
		}
		b.pool = pool
		b.src = source.NewPostgres(pool, a.postgresOptions()...)
		b.checks["postgres"] = db.Healthcheck(pool)
		b.close = append(b.close, db.Shutdown(pool))

	case sourceRedis:
		url := a.v.GetString(keyRedisURL)
		if url == "" {
			return nil, fmt.Errorf("%w: --%s", ErrMissingSetting, keyRedisURL)
		}
		client, err := redis.Connect(ctx, redis.DefaultConfig(url))
		if err != nil {
			return nil, err
		}
		b.client = client
		b.src = source.NewRedis(client, a.v.GetString(keyRedisPrefix))
		b.checks["redis"] = redis.Healthcheck(client)
		b.close = append(b.close, redis.Shutdown(client))

	case sourceS3:
		s3src, err := source.NewS3(source.S3Config{
			Bucket:    a.v.GetString(keyS3Bucket),
			Prefix:    a.v.GetString(keyS3Prefix),
			Region:    a.v.GetString(keyS3Region),
			Endpoint:  a.v.GetString(keyS3Endpoint),
			AccessKey: a.v.GetString(keyS3AccessKey),
			SecretKey: a.v.GetString(keyS3SecretKey),
			PathStyle: a.v.GetBool(keyS3PathStyle),
		})
		if err != nil {
			return nil, err
		}
		b.src = s3src

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, b.kind)
	}

	b.checks["source"] = source.Healthcheck(b.src)
	return b, nil
}

func (a *app) openPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	url := a.v.GetString(keyDatabaseURL)
	if url == "" {
		return nil, fmt.Errorf("%w: --%s", ErrMissingSetting, keyDatabaseURL)
	}
	return db.Connect(ctx, db.DefaultConfig(url))
}

func (a *app) postgresOptions() []source.PostgresOption {
	if table := a.v.GetString(keyTable); table != "" {
		return []source.PostgresOption{source.WithTable(table)}
	}
	return nil
}
