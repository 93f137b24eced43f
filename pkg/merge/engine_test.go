package merge_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/classify"
	"github.com/dmitrymomot/lingo/pkg/fence"
	"github.com/dmitrymomot/lingo/pkg/merge"
)

// throwsOnSet mimics a record that refuses writes: it only exposes reads.
type throwsOnSet struct {
	Label string
}

func (t *throwsOnSet) Set(string) { panic("read only") }

func TestResolve_Records(t *testing.T) {
	t.Parallel()

	t.Run("default fills missing keys", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"a": "aaa", "b": "bbb"}
		def := map[string]any{"a": "aaa", "b": "bbb", "c": "in English only"}

		got := merge.Resolve(active, def)
		require.Equal(t, map[string]any{"a": "aaa", "b": "bbb", "c": "in English only"}, got)
	})

	t.Run("substitutes a missing record wholesale", func(t *testing.T) {
		t.Parallel()
		plain := map[string]any{"a": "x"}
		active := map[string]any{"title": "Titolo"}
		def := map[string]any{"title": "Title", "plainObject": plain}

		got := merge.Resolve(active, def).(map[string]any)
		require.Equal(t, map[string]any{"a": "x"}, got["plainObject"])
		require.True(t, fence.Same(plain, got["plainObject"]))
	})

	t.Run("active wins even when empty", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"empty": "", "zero": 0, "null": nil, "no": false}
		def := map[string]any{"empty": "text", "zero": 7, "null": "value", "no": true}

		got := merge.Resolve(active, def)
		require.Equal(t, active, got)
	})

	t.Run("merges nested records", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{
			"complexObject": map[string]any{"one": "uno", "two": map[string]any{"a": "A"}},
		}
		def := map[string]any{
			"complexObject": map[string]any{
				"one":   "one",
				"two":   map[string]any{"a": "a", "b": "b"},
				"three": "three",
			},
		}

		want := map[string]any{
			"complexObject": map[string]any{
				"one":   "uno",
				"two":   map[string]any{"a": "A", "b": "b"},
				"three": "three",
			},
		}
		got := merge.Resolve(active, def)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("merged tree mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"a": map[string]any{"x": "1"}}
		def := map[string]any{"a": map[string]any{"x": "2", "y": "3"}, "b": "4"}

		merge.Resolve(active, def)
		require.Equal(t, map[string]any{"a": map[string]any{"x": "1"}}, active)
		require.Equal(t, map[string]any{"a": map[string]any{"x": "2", "y": "3"}, "b": "4"}, def)
	})

	t.Run("builds fresh records", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"a": "1"}
		got := merge.Resolve(active, map[string]any{}).(map[string]any)
		got["a"] = "changed"
		require.Equal(t, "1", active["a"])
	})

	t.Run("type mismatch keeps the active side", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"a": map[string]any{"x": "1"}, "b": "text"}
		def := map[string]any{"a": "not a record", "b": map[string]any{"y": "2"}}

		got := merge.Resolve(active, def)
		require.Equal(t, map[string]any{"a": map[string]any{"x": "1"}, "b": "text"}, got)
	})

	t.Run("keeps typed records when values fit", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"labels": map[string]string{"ok": "va bene"}}
		def := map[string]any{"labels": map[string]string{"ok": "ok", "cancel": "cancel"}}

		got := merge.Resolve(active, def).(map[string]any)
		require.Equal(t, map[string]string{"ok": "va bene", "cancel": "cancel"}, got["labels"])
	})

	t.Run("widens typed records when values do not fit", func(t *testing.T) {
		t.Parallel()
		active := map[string]string{"ok": "va bene"}
		def := map[string]any{"ok": "ok", "count": 3}

		got := merge.Resolve(active, def)
		require.Equal(t, map[string]any{"ok": "va bene", "count": 3}, got)
	})

	t.Run("both absent", func(t *testing.T) {
		t.Parallel()
		v, ok := merge.New().Resolve(nil, false, nil, false)
		require.False(t, ok)
		require.Nil(t, v)
	})

	t.Run("absent active root falls back to default root", func(t *testing.T) {
		t.Parallel()
		def := map[string]any{"a": "x"}
		v, ok := merge.New().Resolve(nil, false, def, true)
		require.True(t, ok)
		require.True(t, fence.Same(def, v))
	})

	t.Run("absent default root copies active", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"a": "x"}
		v, ok := merge.New().Resolve(active, true, nil, false)
		require.True(t, ok)
		require.Equal(t, active, v)
		require.False(t, fence.Same(active, v))
	})
}

func TestResolve_Leaves(t *testing.T) {
	t.Parallel()

	t.Run("keeps fences whole", func(t *testing.T) {
		t.Parallel()
		ratings := map[string]any{"excellent": "eccellente", "good": "buono"}
		active := map[string]any{"ratings": fence.New(ratings)}
		def := map[string]any{"ratings": fence.New(map[string]any{
			"excellent": "excellent", "good": "good", "missingComplex": "missing value",
		})}

		got := merge.Resolve(active, def).(map[string]any)
		f, ok := got["ratings"].(*fence.Fence)
		require.True(t, ok)
		require.Same(t, active["ratings"], f)
		require.True(t, fence.Same(ratings, f.Value()))
		require.False(t, f.Has("missingComplex"))
	})

	t.Run("does not merge into a fence from a plain default", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"x": fence.New(map[string]any{"a": "A"})}
		def := map[string]any{"x": map[string]any{"a": "a", "b": "b"}}

		got := merge.Resolve(active, def).(map[string]any)
		require.Same(t, active["x"], got["x"])
	})

	t.Run("passes funcs through", func(t *testing.T) {
		t.Parallel()
		greet := func(name string) string { return "Ciao " + name }
		active := map[string]any{"greet": greet}
		def := map[string]any{"greet": func(name string) string { return "Hello " + name }}

		got := merge.Resolve(active, def).(map[string]any)
		fn, ok := got["greet"].(func(string) string)
		require.True(t, ok)
		require.Equal(t, "Ciao Bob", fn("Bob"))
	})

	t.Run("passes opaque values through", func(t *testing.T) {
		t.Parallel()
		when := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		node := &throwsOnSet{Label: "x"}
		header := http.Header{"A": {"b"}}
		active := map[string]any{"when": when, "node": node, "header": header}
		def := map[string]any{"when": time.Now(), "node": &throwsOnSet{}, "header": http.Header{"C": {"d"}}}

		got := merge.Resolve(active, def).(map[string]any)
		require.Equal(t, when, got["when"])
		require.Same(t, node, got["node"])
		require.True(t, fence.Same(header, got["header"]))
	})

	t.Run("fences a write hostile value without panicking", func(t *testing.T) {
		t.Parallel()
		hostile := &throwsOnSet{Label: "readable"}
		var active map[string]any
		require.NotPanics(t, func() {
			active = map[string]any{"throwsExceptions": fence.New(hostile)}
		})

		got := merge.Resolve(active, map[string]any{"throwsExceptions": "default"}).(map[string]any)
		f := got["throwsExceptions"].(*fence.Fence)
		require.Same(t, hostile, f.Value())
		v, ok := f.Get("Label")
		require.True(t, ok)
		require.Equal(t, "readable", v)
	})
}

func TestResolve_Sequences(t *testing.T) {
	t.Parallel()

	t.Run("merges elements by index", func(t *testing.T) {
		t.Parallel()
		active := map[string]any{"list": []any{
			map[string]any{"title": "Primo"},
			map[string]any{},
		}}
		def := map[string]any{"list": []any{
			map[string]any{"title": "First", "body": "one"},
			map[string]any{"title": "Second"},
		}}

		want := map[string]any{"list": []any{
			map[string]any{"title": "Primo", "body": "one"},
			map[string]any{"title": "Second"},
		}}
		require.Equal(t, want, merge.Resolve(active, def))
	})

	t.Run("ignores the default tail", func(t *testing.T) {
		t.Parallel()
		active := []any{"a"}
		def := []any{"x", "y", "z"}
		require.Equal(t, []any{"a"}, merge.Resolve(active, def))
	})

	t.Run("present nil element wins", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []any{nil, "b"}, merge.Resolve([]any{nil, "b"}, []any{"x", "y"}))
	})

	t.Run("substitutes a missing sequence wholesale", func(t *testing.T) {
		t.Parallel()
		def := map[string]any{"seq": []string{"a", "b"}}
		got := merge.Resolve(map[string]any{}, def).(map[string]any)

		seq, ok := got["seq"].([]string)
		require.True(t, ok)
		require.Equal(t, "a", seq[0])
		require.Equal(t, "b", seq[1])
	})

	t.Run("keeps typed sequences", func(t *testing.T) {
		t.Parallel()
		got := merge.Resolve([]string{"a", "b"}, []string{"x"})
		require.Equal(t, []string{"a", "b"}, got)

		arr := merge.Resolve([2]int{1, 2}, nil)
		require.Equal(t, []int{1, 2}, arr)
	})

	t.Run("keeps record element types", func(t *testing.T) {
		t.Parallel()
		active := []map[string]string{{"a": "A"}}
		def := []map[string]string{{"a": "a", "b": "b"}}

		got := merge.Resolve(active, def)
		require.Equal(t, []map[string]string{{"a": "A", "b": "b"}}, got)
	})
}

func TestResolve_Cycles(t *testing.T) {
	t.Parallel()

	t.Run("record referencing itself", func(t *testing.T) {
		t.Parallel()
		loop := map[string]any{"name": "loop"}
		loop["self"] = loop

		tr := merge.NewTrace()
		var got any
		require.NotPanics(t, func() {
			got, _ = merge.New(merge.WithTrace(tr)).Resolve(loop, true, map[string]any{"extra": "x"}, true)
		})

		m := got.(map[string]any)
		require.Equal(t, "loop", m["name"])
		require.Equal(t, "x", m["extra"])
		require.True(t, fence.Same(loop, m["self"]))

		origin, ok := tr.Origin("self")
		require.True(t, ok)
		require.Equal(t, merge.OriginCycle, origin)
	})

	t.Run("sequence containing itself", func(t *testing.T) {
		t.Parallel()
		seq := []any{"a", nil}
		seq[1] = seq

		require.NotPanics(t, func() { merge.Resolve(seq, nil) })
	})

	t.Run("shared subtree is not a cycle", func(t *testing.T) {
		t.Parallel()
		shared := map[string]any{"k": "v"}
		active := map[string]any{"left": shared, "right": shared}
		def := map[string]any{"right": map[string]any{"extra": "e"}}

		got := merge.Resolve(active, def).(map[string]any)
		require.Equal(t, map[string]any{"k": "v"}, got["left"])
		require.Equal(t, map[string]any{"k": "v", "extra": "e"}, got["right"])
	})
}

func TestResolve_Trace(t *testing.T) {
	t.Parallel()

	tr := merge.NewTrace()
	e := merge.New(merge.WithTrace(tr))

	active := map[string]any{
		"title":   "Titolo",
		"ratings": fence.New(map[string]any{"good": "buono"}),
		"fn":      func() {},
		"list":    []any{"uno"},
	}
	def := map[string]any{
		"title":  "Title",
		"footer": "Footer",
		"nested": map[string]any{"a": "b"},
	}

	_, ok := e.Resolve(active, true, def, true)
	require.True(t, ok)

	want := []merge.Entry{
		{Path: "fn", Origin: merge.OriginOpaque, Kind: classify.Callable},
		{Path: "list[0]", Origin: merge.OriginActive, Kind: classify.Primitive},
		{Path: "ratings", Origin: merge.OriginFenced, Kind: classify.Fence},
		{Path: "title", Origin: merge.OriginActive, Kind: classify.Primitive},
		{Path: "footer", Origin: merge.OriginDefault, Kind: classify.Primitive},
		{Path: "nested", Origin: merge.OriginDefault, Kind: classify.Plain},
	}
	require.Equal(t, want, tr.Entries())
	require.Equal(t, []string{"footer", "nested"}, tr.Fallbacks())
	require.Equal(t, 6, tr.Len())

	_, ok = tr.Origin("nested.a")
	assert.False(t, ok)
	assert.Equal(t, "default", merge.OriginDefault.String())

	var nilTrace *merge.Trace
	assert.Nil(t, nilTrace.Fallbacks())
	assert.Zero(t, nilTrace.Len())
}

func TestResolve_LogsFallbacks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := merge.New(merge.WithLogger(logger))

	e.Resolve(map[string]any{"a": "A"}, true, map[string]any{"a": "a", "menu": map[string]any{"b": "b"}}, true)

	out := buf.String()
	require.Contains(t, out, "locale fallback")
	require.Contains(t, out, "path=menu")
	require.NotContains(t, out, "path=a")
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	active := map[string]any{"a": map[string]any{"b": []any{"x", map[string]any{"c": "C"}}}}
	def := map[string]any{"a": map[string]any{"b": []any{"y", map[string]any{"d": "D"}}, "e": "E"}}

	first := merge.Resolve(active, def)
	second := merge.Resolve(active, def)
	require.Empty(t, cmp.Diff(first, second))
}
