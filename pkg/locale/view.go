package locale

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/lingo/pkg/fence"
	"github.com/dmitrymomot/lingo/pkg/merge"
)

// View is the merged content of one language. It is built once per language
// switch and never patched afterwards; a new switch produces a new View.
type View struct {
	id       uuid.UUID
	lang     string
	resolved string
	fallback bool
	root     Tree
	trace    *merge.Trace
	builtAt  time.Time
}

func newView(lang, resolved string, fallback bool, root Tree, trace *merge.Trace) *View {
	return &View{
		id:       uuid.New(),
		lang:     lang,
		resolved: resolved,
		fallback: fallback,
		root:     root,
		trace:    trace,
		builtAt:  time.Now(),
	}
}

// ID identifies this build of the view.
func (v *View) ID() uuid.UUID { return v.id }

// Language returns the requested language.
func (v *View) Language() string { return v.lang }

// Resolved returns the language whose tree was active. It differs from
// Language when the requested language is unknown.
func (v *View) Resolved() string { return v.resolved }

// Fallback reports whether the whole view is the default tree because the
// requested language is unknown.
func (v *View) Fallback() bool { return v.fallback }

// BuiltAt returns when the view was materialized.
func (v *View) BuiltAt() time.Time { return v.builtAt }

// Trace returns the provenance of the view leaves, or nil when tracing is off.
func (v *View) Trace() *merge.Trace { return v.trace }

// Root returns the merged tree. Callers must treat it as read-only.
func (v *View) Root() Tree { return v.root }

// Keys returns the sorted top level keys.
func (v *View) Keys() []string {
	return slices.Sorted(maps.Keys(v.root))
}

// Get returns the node at path. Paths use the kinded notation
// "menu.items[0].title"; a dotted number addresses a sequence index too.
// Fences are read through their snapshot, and the reserved key "_value"
// returns the fenced original.
func (v *View) Get(path string) (any, bool) {
	p, err := merge.ParsePath(path)
	if err != nil {
		return nil, false
	}
	return v.Lookup(p)
}

// Lookup is Get for a parsed path.
func (v *View) Lookup(p merge.Path) (any, bool) {
	return Lookup(v.root, p)
}

// Has reports whether path exists.
func (v *View) Has(path string) bool {
	_, ok := v.Get(path)
	return ok
}

// String returns the node at path rendered as text. Strings are returned as
// is, fmt.Stringer values through String, other primitives with fmt.Sprint.
// Missing nodes and structured nodes yield "".
func (v *View) String(path string) string {
	n, ok := v.Get(path)
	if !ok {
		return ""
	}
	return Text(n)
}

// Text renders a leaf node as text, or "" for records and sequences.
func Text(n any) string {
	switch s := n.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}

	rv := reflect.ValueOf(n)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(n)
	}
	return ""
}

// Lookup walks p from node. It reads string keyed maps, slices and arrays,
// fences and fence.Accessor values; every other node is a dead end.
func Lookup(node any, p merge.Path) (any, bool) {
	cur := node
	for _, seg := range p.Segments() {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func step(node any, seg merge.Segment) (any, bool) {
	key := seg.Key
	if seg.IsIndex {
		key = strconv.Itoa(seg.Index)
	}

	switch n := node.(type) {
	case nil:
		return nil, false
	case *fence.Fence:
		return n.Get(key)
	case fence.Accessor:
		return n.Get(key)
	}

	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		i := seg.Index
		if !seg.IsIndex {
			var err error
			if i, err = strconv.Atoi(key); err != nil {
				return nil, false
			}
		}
		if i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}
