package lingo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo"
)

func TestLocalizer(t *testing.T) {
	t.Parallel()

	legal := map[string]any{"imprint": "Impressum"}
	trees := map[string]lingo.Tree{
		"en": {
			"menu":  map[string]any{"save": "Save", "cancel": "Cancel"},
			"legal": map[string]any{"imprint": "Imprint", "privacy": "Privacy"},
		},
		"de": {
			"menu":  map[string]any{"save": "Speichern"},
			"legal": lingo.Fence(legal),
		},
	}

	l := lingo.New(trees, lingo.WithDefaultLanguage("en"), lingo.WithLanguage("de"))

	assert.Equal(t, "Speichern", l.String("menu.save"))
	assert.Equal(t, "Cancel", l.String("menu.cancel"))
	assert.Equal(t, "Impressum", l.String("legal.imprint"))
	assert.False(t, l.Has("legal.privacy"))

	v, ok := l.Get("legal." + lingo.ValueKey)
	require.True(t, ok)
	assert.Equal(t, legal, v)

	l.SetLanguage("fr")
	assert.Equal(t, "Save", l.String("menu.save"))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	got := lingo.Resolve(
		lingo.Tree{"a": map[string]any{"x": "active"}},
		lingo.Tree{"a": map[string]any{"x": "default", "y": "default"}, "b": "default"},
	)
	assert.Equal(t, lingo.Tree{
		"a": map[string]any{"x": "active", "y": "default"},
		"b": "default",
	}, got)
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	v := []string{"a"}
	assert.Equal(t, v, lingo.Unwrap(lingo.Fence(v)))
	assert.Equal(t, "plain", lingo.Unwrap("plain"))
}
