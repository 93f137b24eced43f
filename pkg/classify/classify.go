// Package classify sorts locale tree nodes into the categories that decide how
// the fallback merge treats them.
package classify

import (
	"reflect"

	"github.com/dmitrymomot/lingo/pkg/fence"
)

// Kind is the merge category of a locale tree node.
type Kind uint8

const (
	// Primitive covers nil, booleans, strings and numbers, named or not.
	Primitive Kind = iota
	// Fence is a value wrapped by fence.New.
	Fence
	// Callable is any func value. The merge never calls it.
	Callable
	// Sequence is an unnamed slice or array type, except []byte.
	Sequence
	// Plain is an unnamed map type with string keys: a record authored as
	// locale content. It is the only kind merged key by key.
	Plain
	// Opaque is every other structured value: structs, pointers, named map and
	// slice types, channels, []byte.
	Opaque
)

var kindNames = [...]string{
	Primitive: "primitive",
	Fence:     "fence",
	Callable:  "callable",
	Sequence:  "sequence",
	Plain:     "plain",
	Opaque:    "opaque",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Recursive reports whether the merge walks into nodes of this kind.
func (k Kind) Recursive() bool {
	return k == Plain || k == Sequence
}

// Of returns the kind of v. It only inspects the dynamic type of v.
func Of(v any) Kind {
	if v == nil {
		return Primitive
	}
	if _, ok := v.(*fence.Fence); ok {
		return Fence
	}
	return OfType(reflect.TypeOf(v))
}

// OfType returns the kind of values of type t.
func OfType(t reflect.Type) Kind {
	if t == nil {
		return Primitive
	}
	if t == fenceType {
		return Fence
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return Primitive
	case reflect.Func:
		return Callable
	case reflect.Slice, reflect.Array:
		if t.Name() != "" || t.Elem().Kind() == reflect.Uint8 {
			return Opaque
		}
		return Sequence
	case reflect.Map:
		if t.Name() != "" || t.Key().Kind() != reflect.String {
			return Opaque
		}
		return Plain
	}

	return Opaque
}

var fenceType = reflect.TypeFor[*fence.Fence]()
