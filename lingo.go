package lingo

import (
	"github.com/dmitrymomot/lingo/pkg/fence"
	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/merge"
)

// ValueKey is the reserved path step that reads a fence's wrapped value:
// "legal._value" addresses the value passed to Fence, not a member.
const ValueKey = fence.ValueKey

type (
	// Tree is one language's content: namespace or key to node.
	Tree = locale.Tree
	// View is the merged content of one language.
	View = locale.View
	// Localizer holds the trees of every language and the current view.
	Localizer = locale.Localizer
	// Option configures a Localizer.
	Option = locale.Option
)

// Fence marks v as a leaf. A fenced value in a language tree replaces the
// default language's value at that position as a whole; nothing inside it is
// filled in from the default.
//
//	"legal": lingo.Fence(map[string]any{"imprint": "..."})
func Fence(v any) *fence.Fence {
	return fence.New(v)
}

// Unwrap returns the value passed to Fence, or v when v is not a fence.
func Unwrap(v any) any {
	return fence.Unwrap(v)
}

// New creates a Localizer over trees keyed by language.
//
//	l := lingo.New(trees, lingo.WithDefaultLanguage("en"), lingo.WithLanguage("de"))
//	title := l.String("home.title")
func New(trees map[string]Tree, opts ...Option) *Localizer {
	return locale.New(trees, opts...)
}

// WithDefaultLanguage sets the language every other language falls back to.
func WithDefaultLanguage(lang string) Option { return locale.WithDefaultLanguage(lang) }

// WithLanguage sets the initial language instead of detecting it from the host.
func WithLanguage(lang string) Option { return locale.WithLanguage(lang) }

// Resolve merges active over def once, without a Localizer.
func Resolve(active, def Tree) Tree {
	out, _ := merge.Resolve(active, def).(map[string]any)
	return out
}
