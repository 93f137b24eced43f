package source

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/lingo/pkg/locale"
)

// DefaultRedisPrefix prefixes the per-language hashes.
const DefaultRedisPrefix = "lingo"

// Redis loads trees from one hash per language, {prefix}:{lang}, with a field
// per namespace holding a JSON document.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a source over client. An empty prefix uses
// DefaultRedisPrefix.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Load scans for language hashes and reads each one.
func (r *Redis) Load(ctx context.Context) (map[string]locale.Tree, error) {
	keys, err := r.keys(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]locale.Tree)
	for _, key := range keys {
		lang := strings.TrimPrefix(key, r.prefix+":")
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %w", ErrLoadFailed, key, err)
		}

		namespaces := slices.Sorted(maps.Keys(fields))
		for _, ns := range namespaces {
			content, err := DecodeJSON([]byte(fields[ns]))
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %w", ErrInvalidFile, lang, ns, err)
			}
			addNamespace(out, lang, ns, content)
		}
	}
	return out, nil
}

// Put stores one namespace of a language.
func (r *Redis) Put(ctx context.Context, lang, namespace string, content map[string]any) error {
	data, err := EncodeJSON(content)
	if err != nil {
		return err
	}
	if err := r.client.HSet(ctx, r.key(lang), namespace, data).Err(); err != nil {
		return fmt.Errorf("%w: storing %s/%s: %w", ErrLoadFailed, lang, namespace, err)
	}
	return nil
}

// Delete removes one namespace of a language.
func (r *Redis) Delete(ctx context.Context, lang, namespace string) error {
	n, err := r.client.HDel(ctx, r.key(lang), namespace).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: deleting %s/%s: %w", ErrLoadFailed, lang, namespace, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) key(lang string) string {
	return r.prefix + ":" + lang
}

// keys uses SCAN, which does not block the server the way KEYS does.
func (r *Redis) keys(ctx context.Context) ([]string, error) {
	var (
		out    []string
		cursor uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+":*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: scanning %q: %w", ErrLoadFailed, r.prefix, err)
		}
		out = append(out, keys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
