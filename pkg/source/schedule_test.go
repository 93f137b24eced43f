package source_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/cache"
	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/source"
)

func TestSchedule_InvalidExpression(t *testing.T) {
	t.Parallel()

	_, err := source.Schedule("not a cron", source.Static(nil), func(map[string]locale.Tree) {})
	require.ErrorIs(t, err, source.ErrInvalidConfig)
}

func TestReloader_Reload(t *testing.T) {
	t.Parallel()

	var got map[string]locale.Tree
	want := map[string]locale.Tree{"en": {"common": map[string]any{"a": "b"}}}

	r, err := source.Schedule("@every 1h", source.Static(want), func(trees map[string]locale.Tree) { got = trees })
	require.NoError(t, err)

	require.NoError(t, r.Reload(context.Background()))
	assert.Equal(t, want, got)
	assert.True(t, r.Next().IsZero(), "no next run before Start")
}

func TestReloader_ReloadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	applied := false
	r, err := source.Schedule("@every 1h",
		source.Func(func(context.Context) (map[string]locale.Tree, error) { return nil, boom }),
		func(map[string]locale.Tree) { applied = true },
	)
	require.NoError(t, err)

	require.ErrorIs(t, r.Reload(context.Background()), boom)
	assert.False(t, applied)
}

func TestReloader_InvalidatesCachedSource(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[map[string]locale.Tree]()
	t.Cleanup(func() { _ = c.Close() })

	var calls atomic.Int32
	cached := source.NewCached(countingSource(&calls), c, "reloader", time.Hour)

	var last map[string]locale.Tree
	r, err := source.Schedule("*/5 * * * *", cached, func(trees map[string]locale.Tree) { last = trees })
	require.NoError(t, err)

	require.NoError(t, r.Reload(context.Background()))
	require.NoError(t, r.Reload(context.Background()))

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, last["en"]["common"].(map[string]any)["n"])
}

func TestReloader_StartStop(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	r, err := source.Schedule("@every 1s", source.Static(nil), func(map[string]locale.Tree) { runs.Add(1) })
	require.NoError(t, err)

	r.Start()
	assert.False(t, r.Next().IsZero())

	require.Eventually(t, func() bool { return runs.Load() > 0 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
}
