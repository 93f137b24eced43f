package source

import (
	"context"
	"fmt"
	"maps"

	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/merge"
)

// Source supplies language trees keyed by language. Each tree is keyed by
// namespace, so {"en": {"common": {...}}} holds the "common" namespace of
// English content.
type Source interface {
	Load(ctx context.Context) (map[string]locale.Tree, error)
}

// Func adapts a function to a Source.
type Func func(ctx context.Context) (map[string]locale.Tree, error)

// Load calls f.
func (f Func) Load(ctx context.Context) (map[string]locale.Tree, error) {
	return f(ctx)
}

// Static serves fixed trees.
func Static(trees map[string]locale.Tree) Source {
	return Func(func(context.Context) (map[string]locale.Tree, error) {
		return maps.Clone(trees), nil
	})
}

type multi []Source

// Multi combines sources. Content from later sources is merged over content
// from earlier ones, so a database can patch what files ship.
func Multi(sources ...Source) Source {
	return multi(sources)
}

func (m multi) Load(ctx context.Context) (map[string]locale.Tree, error) {
	out := make(map[string]locale.Tree)
	for i, src := range m {
		trees, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		mergeInto(out, trees)
	}
	return out, nil
}

// mergeInto merges every namespace of add over the same namespace in dst.
func mergeInto(dst, add map[string]locale.Tree) {
	for lang, tree := range add {
		cur, ok := dst[lang]
		if !ok {
			dst[lang] = maps.Clone(tree)
			continue
		}
		for ns, content := range tree {
			if prev, ok := cur[ns]; ok {
				cur[ns] = merge.Resolve(content, prev)
				continue
			}
			cur[ns] = content
		}
	}
}

// addNamespace stores content under lang and ns, merging over content already
// loaded for the same namespace.
func addNamespace(dst map[string]locale.Tree, lang, ns string, content map[string]any) {
	mergeInto(dst, map[string]locale.Tree{lang: {ns: content}})
}
