package source_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/source"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Idle keep-alive connections of SDK and database clients.
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	src := source.Func(func(context.Context) (map[string]locale.Tree, error) {
		return map[string]locale.Tree{"en": {"common": map[string]any{"a": "b"}}}, nil
	})
	trees, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", trees["en"]["common"].(map[string]any)["a"])
}

func TestStatic(t *testing.T) {
	t.Parallel()

	in := map[string]locale.Tree{"en": {"common": map[string]any{"a": "b"}}}
	trees, err := source.Static(in).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in, trees)

	trees["de"] = locale.Tree{}
	assert.NotContains(t, in, "de", "callers cannot add languages to the static set")
}

func TestMulti(t *testing.T) {
	t.Parallel()

	files := source.Static(map[string]locale.Tree{
		"en": {"common": map[string]any{
			"hello":   "Hello",
			"buttons": map[string]any{"save": "Save", "cancel": "Cancel"},
		}},
		"de": {"common": map[string]any{"hello": "Hallo"}},
	})
	patches := source.Static(map[string]locale.Tree{
		"en": {
			"common": map[string]any{"buttons": map[string]any{"save": "Store"}},
			"extra":  map[string]any{"k": "v"},
		},
		"fr": {"common": map[string]any{"hello": "Bonjour"}},
	})

	trees, err := source.Multi(files, patches).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"hello":   "Hello",
		"buttons": map[string]any{"save": "Store", "cancel": "Cancel"},
	}, trees["en"]["common"])
	assert.Equal(t, map[string]any{"k": "v"}, trees["en"]["extra"])
	assert.Equal(t, map[string]any{"hello": "Hallo"}, trees["de"]["common"])
	assert.Equal(t, map[string]any{"hello": "Bonjour"}, trees["fr"]["common"])
}

func TestMulti_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := source.Func(func(context.Context) (map[string]locale.Tree, error) {
		return nil, boom
	})

	_, err := source.Multi(source.Static(nil), failing).Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "source 1")
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, source.Healthcheck(nil)(ctx), source.ErrLoadFailed)
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, source.Healthcheck(source.Static(nil))(ctx), source.ErrNotFound)
	})

	t.Run("load error is returned", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		src := source.Func(func(context.Context) (map[string]locale.Tree, error) { return nil, boom })
		require.ErrorIs(t, source.Healthcheck(src)(ctx), boom)
	})

	t.Run("content is healthy", func(t *testing.T) {
		t.Parallel()
		src := source.Static(map[string]locale.Tree{"en": {"app": map[string]any{"x": "y"}}})
		require.NoError(t, source.Healthcheck(src)(ctx))
	})
}
