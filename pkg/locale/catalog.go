package locale

import (
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/lingo/pkg/merge"
)

// Tree is the authored content of one language.
type Tree = map[string]any

// Producer supplies a language tree lazily. It is called on every view build
// for its language.
type Producer func() Tree

// Catalog holds the trees of every configured language. It never mutates the
// trees it was given.
type Catalog struct {
	defaultLang string
	trees       map[string]Tree
	producers   map[string]Producer
	langs       []string
}

// NewCatalog creates a catalog. A language present in both maps uses its
// producer.
func NewCatalog(defaultLang string, trees map[string]Tree, producers map[string]Producer) *Catalog {
	c := &Catalog{
		defaultLang: normalize(defaultLang),
		trees:       make(map[string]Tree, len(trees)),
		producers:   make(map[string]Producer, len(producers)),
	}
	for lang, tree := range trees {
		if tree != nil {
			c.trees[normalize(lang)] = tree
		}
	}
	for lang, p := range producers {
		if p != nil {
			c.producers[normalize(lang)] = p
		}
	}

	set := make(map[string]struct{}, len(c.trees)+len(c.producers))
	for lang := range c.trees {
		set[lang] = struct{}{}
	}
	for lang := range c.producers {
		set[lang] = struct{}{}
	}
	delete(set, c.defaultLang)

	c.langs = slices.Sorted(maps.Keys(set))
	if c.Has(c.defaultLang) {
		c.langs = append([]string{c.defaultLang}, c.langs...)
	}
	return c
}

// DefaultLanguage returns the language every other language falls back to.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// Languages returns the configured languages, default first, then sorted.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.langs)
}

// Has reports whether lang has a tree or a producer.
func (c *Catalog) Has(lang string) bool {
	lang = normalize(lang)
	if _, ok := c.producers[lang]; ok {
		return true
	}
	_, ok := c.trees[lang]
	return ok
}

// Tree returns the tree of lang, calling its producer if it has one.
func (c *Catalog) Tree(lang string) (Tree, bool) {
	lang = normalize(lang)
	if p, ok := c.producers[lang]; ok {
		t := p()
		return t, t != nil
	}
	t, ok := c.trees[lang]
	return t, ok
}

// Resolve builds the view of lang with e. An unknown language resolves as if
// its tree were entirely absent, which yields the default tree.
func (c *Catalog) Resolve(lang string, e *merge.Engine) *View {
	def, defOK := c.Tree(c.defaultLang)
	return c.resolve(normalize(lang), def, defOK, c.defaultLang, e)
}

// ResolveOver builds the view of lang with the root of parent as the default
// side. It chains fallbacks such as pt-BR over pt over en.
func (c *Catalog) ResolveOver(lang string, parent *View, e *merge.Engine) *View {
	if parent == nil {
		return c.Resolve(lang, e)
	}
	return c.resolve(normalize(lang), parent.Root(), true, parent.Resolved(), e)
}

func (c *Catalog) resolve(lang string, def Tree, defOK bool, defLang string, e *merge.Engine) *View {
	if e == nil {
		e = merge.New()
	}

	active, activeOK := c.Tree(lang)
	resolved := lang
	if !activeOK {
		resolved = defLang
	}

	var defNode any
	if defOK {
		defNode = def
	}
	root, ok := e.Resolve(active, activeOK, defNode, defOK)
	tree, isTree := root.(map[string]any)
	if !ok || !isTree {
		tree = Tree{}
	}
	if !activeOK {
		// the default root is shared wholesale; the view gets its own top level
		tree = maps.Clone(tree)
	}

	return newView(lang, resolved, !activeOK, tree, e.Trace())
}

func normalize(lang string) string {
	return strings.TrimSpace(lang)
}
