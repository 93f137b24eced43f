package fence

import "reflect"

// Is reports whether v is a fence.
func Is(v any) bool {
	_, ok := v.(*Fence)
	return ok
}

// Unwrap returns the wrapped value of a fence, or v itself.
func Unwrap(v any) any {
	if f, ok := v.(*Fence); ok && f != nil {
		return f.original
	}
	return v
}

// Same reports whether a and b are the same value by reference. Maps,
// pointers, channels and funcs compare by pointer, slices by backing array,
// length and capacity; other comparable values compare with ==.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	}

	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}
