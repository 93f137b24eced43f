package merge

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"reflect"
	"slices"

	"github.com/dmitrymomot/lingo/pkg/classify"
)

// Engine resolves an active locale tree against a default tree.
// An Engine without a trace is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
	trace  *Trace
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve merges active over def and reports whether the result is present.
// activeOK and defOK tell whether each side is present at all; a present nil
// is a value, not an absence.
//
// The result is active itself when active is present and not a plain record
// or sequence. Records and sequences are rebuilt: record keys are the union of
// both sides, sequence length follows active. When active is absent, def is
// returned without copying.
func (e *Engine) Resolve(active any, activeOK bool, def any, defOK bool) (any, bool) {
	w := walker{engine: e, stack: make(map[frame]struct{})}
	return w.resolve(Path{}, active, activeOK, def, defOK)
}

// Trace returns the trace the engine records into, or nil.
func (e *Engine) Trace() *Trace {
	return e.trace
}

// Resolve merges active over def with a default Engine. Both sides are
// present.
func Resolve(active, def any) any {
	v, _ := New().Resolve(active, true, def, true)
	return v
}

type frame struct {
	ptr  uintptr
	kind reflect.Kind
}

type walker struct {
	engine *Engine
	stack  map[frame]struct{}
}

func (w *walker) resolve(p Path, active any, activeOK bool, def any, defOK bool) (any, bool) {
	if !activeOK {
		if !defOK {
			return nil, false
		}
		w.fallback(p, def)
		return def, true
	}

	kind := classify.Of(active)
	if !kind.Recursive() {
		w.leaf(p, kind)
		return active, true
	}

	av := reflect.ValueOf(active)
	f, tracked := frameOf(av)
	if tracked {
		if _, onStack := w.stack[f]; onStack {
			w.record(p, OriginCycle, kind)
			return active, true
		}
		w.stack[f] = struct{}{}
		defer delete(w.stack, f)
	}

	if kind == classify.Plain {
		return w.plain(p, av, def, defOK), true
	}
	return w.sequence(p, av, def, defOK), true
}

// plain merges a plain record. Active keys come first in sorted order,
// followed by keys only the default has.
func (w *walker) plain(p Path, av reflect.Value, def any, defOK bool) any {
	var dv reflect.Value
	if defOK && classify.Of(def) == classify.Plain {
		dv = reflect.ValueOf(def)
	}

	merged := make(map[string]any, av.Len())
	for _, k := range sortedKeys(av) {
		d, dOK := mapIndex(dv, k)
		a, _ := mapIndex(av, k)
		v, ok := w.resolve(p.Key(k), a, true, d, dOK)
		if ok {
			merged[k] = v
		}
	}

	if dv.IsValid() {
		for _, k := range sortedKeys(dv) {
			if _, seen := merged[k]; seen {
				continue
			}
			d, _ := mapIndex(dv, k)
			if v, ok := w.resolve(p.Key(k), nil, false, d, true); ok {
				merged[k] = v
			}
		}
	}

	return rebuildMap(av.Type(), merged)
}

// sequence merges position by position over the active length. Default
// elements past the active length are not carried over.
func (w *walker) sequence(p Path, av reflect.Value, def any, defOK bool) any {
	var dv reflect.Value
	if defOK && classify.Of(def) == classify.Sequence {
		dv = reflect.ValueOf(def)
	}

	items := make([]any, av.Len())
	for i := range items {
		var d any
		dOK := dv.IsValid() && i < dv.Len()
		if dOK {
			d = dv.Index(i).Interface()
		}
		items[i], _ = w.resolve(p.Index(i), av.Index(i).Interface(), true, d, dOK)
	}

	return rebuildSlice(av.Type(), items)
}

func (w *walker) leaf(p Path, kind classify.Kind) {
	switch kind {
	case classify.Fence:
		w.record(p, OriginFenced, kind)
	case classify.Callable, classify.Opaque:
		w.record(p, OriginOpaque, kind)
	default:
		w.record(p, OriginActive, kind)
	}
}

func (w *walker) fallback(p Path, def any) {
	kind := classify.Of(def)
	w.record(p, OriginDefault, kind)

	l := w.engine.logger
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("locale fallback",
			slog.String("path", p.String()),
			slog.String("kind", kind.String()),
		)
	}
}

func (w *walker) record(p Path, o Origin, kind classify.Kind) {
	if t := w.engine.trace; t != nil {
		t.record(p, o, kind)
	}
}

func frameOf(v reflect.Value) (frame, bool) {
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		if v.IsNil() {
			return frame{}, false
		}
		ptr := v.Pointer()
		if ptr == 0 {
			return frame{}, false
		}
		return frame{ptr: ptr, kind: v.Kind()}, true
	}
	return frame{}, false
}

func sortedKeys(m reflect.Value) []string {
	keys := make([]string, 0, m.Len())
	iter := m.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	slices.SortFunc(keys, cmp.Compare[string])
	return keys
}

func mapIndex(m reflect.Value, key string) (any, bool) {
	if !m.IsValid() {
		return nil, false
	}
	v := m.MapIndex(reflect.ValueOf(key).Convert(m.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

var (
	anyMapType   = reflect.TypeFor[map[string]any]()
	anySliceType = reflect.TypeFor[[]any]()
)

// rebuildMap returns merged in the type of the active record when every value
// fits its element type, and as map[string]any otherwise.
func rebuildMap(t reflect.Type, merged map[string]any) any {
	if t == anyMapType {
		return merged
	}
	out := reflect.MakeMapWithSize(t, len(merged))
	for k, v := range merged {
		rv, ok := fit(v, t.Elem())
		if !ok {
			return merged
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), rv)
	}
	return out.Interface()
}

// rebuildSlice returns items as a slice of the active element type when every
// item fits, and as []any otherwise. Arrays come back as slices.
func rebuildSlice(t reflect.Type, items []any) any {
	if t == anySliceType {
		return items
	}
	st := reflect.SliceOf(t.Elem())
	out := reflect.MakeSlice(st, len(items), len(items))
	for i, v := range items {
		rv, ok := fit(v, st.Elem())
		if !ok {
			return items
		}
		out.Index(i).Set(rv)
	}
	return out.Interface()
}

func fit(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return rv, true
}
