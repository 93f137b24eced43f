package source

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/lingo/pkg/cache"
	"github.com/dmitrymomot/lingo/pkg/locale"
)

// Cached serves trees from c and loads src only on a miss. Concurrent misses
// for the same key share one load.
type Cached struct {
	src   Source
	cache cache.Cache[map[string]locale.Tree]
	key   string
	ttl   time.Duration
}

// NewCached wraps src. A zero ttl uses the cache's default TTL.
func NewCached(src Source, c cache.Cache[map[string]locale.Tree], key string, ttl time.Duration) *Cached {
	return &Cached{src: src, cache: c, key: key, ttl: ttl}
}

// Load returns the cached trees, loading src on a miss.
func (c *Cached) Load(ctx context.Context) (map[string]locale.Tree, error) {
	return cache.GetOrSet(ctx, c.cache, c.key, func(ctx context.Context) (map[string]locale.Tree, time.Duration, error) {
		trees, err := c.src.Load(ctx)
		return trees, c.ttl, err
	})
}

// Invalidate drops the cached trees so the next Load reads src.
func (c *Cached) Invalidate(ctx context.Context) error {
	if err := c.cache.Delete(ctx, c.key); err != nil && !errors.Is(err, cache.ErrNotFound) {
		return err
	}
	return nil
}

// TreeMarshaler stores trees in byte-oriented caches such as cache.Redis,
// keeping fences and rich text intact.
type TreeMarshaler struct{}

// Marshal encodes trees as a JSON object of language to namespace documents.
func (TreeMarshaler) Marshal(trees map[string]locale.Tree) ([]byte, error) {
	doc := make(map[string]any, len(trees))
	for lang, tree := range trees {
		doc[lang] = tree
	}
	return EncodeJSON(doc)
}

// Unmarshal decodes what Marshal produced.
func (TreeMarshaler) Unmarshal(data []byte) (map[string]locale.Tree, error) {
	doc, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	out := make(map[string]locale.Tree, len(doc))
	for lang, v := range doc {
		tree, ok := v.(map[string]any)
		if !ok {
			return nil, errors.Join(ErrDecode, errors.New("language "+lang+" is not an object"))
		}
		out[lang] = tree
	}
	return out, nil
}

var _ cache.Marshaler[map[string]locale.Tree] = TreeMarshaler{}
