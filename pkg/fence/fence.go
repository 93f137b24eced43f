package fence

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ValueKey is the reserved member name that resolves to the wrapped value in
// path lookups. It is never used for a snapshot member.
const ValueKey = "_value"

// Accessor is implemented by values that expose their data members by key.
// Fences implement it, so wrapping a fence snapshots the inner fence's members.
type Accessor interface {
	Keys() []string
	Get(key string) (any, bool)
}

// Fence wraps a value so that locale fallback merging treats it as a leaf.
// It is read-only: no method of Fence writes to the snapshot or to the
// wrapped value.
type Fence struct {
	original any
	members  map[string]any
	methods  map[string]reflect.Value
	keys     []string
	skipped  []string
}

// New wraps v. It never fails: members that cannot be read are skipped.
func New(v any) *Fence {
	f := &Fence{
		original: v,
		members:  make(map[string]any),
		methods:  make(map[string]reflect.Value),
	}

	f.snapshot(v)
	f.bindMethods(v)

	f.keys = slices.SortedFunc(maps.Keys(f.members), compareKeys)

	return f
}

// Value returns the exact value passed to New.
func (f *Fence) Value() any {
	return f.original
}

// Get returns the snapshot member stored under key.
// ValueKey returns the wrapped value itself.
func (f *Fence) Get(key string) (any, bool) {
	if key == ValueKey {
		return f.original, true
	}
	v, ok := f.members[key]
	return v, ok
}

// Index returns the member at position i of a wrapped slice or array.
func (f *Fence) Index(i int) (any, bool) {
	if i < 0 {
		return nil, false
	}
	v, ok := f.members[strconv.Itoa(i)]
	return v, ok
}

// Has reports whether the snapshot contains key.
func (f *Fence) Has(key string) bool {
	_, ok := f.members[key]
	return ok
}

// Keys returns the snapshot member names. Numeric keys come first in numeric
// order, the rest are sorted lexically.
func (f *Fence) Keys() []string {
	return slices.Clone(f.keys)
}

// Len returns the number of snapshot members.
func (f *Fence) Len() int {
	return len(f.members)
}

// Snapshot returns a shallow copy of the snapshot members.
func (f *Fence) Snapshot() map[string]any {
	return maps.Clone(f.members)
}

// Skipped returns the members whose read panicked during construction.
func (f *Fence) Skipped() []string {
	return slices.Clone(f.skipped)
}

// String formats the wrapped value.
func (f *Fence) String() string {
	return fmt.Sprint(f.original)
}

// MarshalJSON encodes the snapshot, so a fenced record encodes like the record.
func (f *Fence) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.members)
}

// MarshalYAML encodes the snapshot.
func (f *Fence) MarshalYAML() (any, error) {
	return f.Snapshot(), nil
}

func (f *Fence) snapshot(v any) {
	if a, ok := v.(Accessor); ok {
		keys, ok := readKeys(a)
		if !ok {
			f.skipped = append(f.skipped, "*")
			return
		}
		for _, key := range keys {
			f.copyMember(key, func() (any, bool) { return a.Get(key) })
		}
		return
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			val := iter.Value()
			f.copyMember(mapKey(iter.Key()), func() (any, bool) { return val.Interface(), true })
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			f.copyMember(strconv.Itoa(i), func() (any, bool) { return rv.Index(i).Interface(), true })
		}
	case reflect.Struct:
		for _, sf := range reflect.VisibleFields(rv.Type()) {
			if !sf.IsExported() || sf.Anonymous {
				continue
			}
			f.copyMember(sf.Name, func() (any, bool) { return rv.FieldByIndex(sf.Index).Interface(), true })
		}
	}
}

func (f *Fence) copyMember(key string, read func() (any, bool)) {
	if key == ValueKey {
		return
	}
	val, ok, panicked := safeRead(read)
	if panicked {
		f.skipped = append(f.skipped, key)
		return
	}
	if ok {
		f.members[key] = val
	}
}

func (f *Fence) bindMethods(v any) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return
	}
	t := rv.Type()
	for i := range t.NumMethod() {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		f.methods[m.Name] = rv.Method(i)
	}
}

func safeRead(read func() (any, bool)) (val any, ok, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			val, ok, panicked = nil, false, true
		}
	}()
	val, ok = read()
	return val, ok, false
}

func readKeys(a Accessor) (keys []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			keys, ok = nil, false
		}
	}()
	return a.Keys(), true
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func compareKeys(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(ai, bi)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}
