package fence

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Call invokes the wrapped value's method name with args, using the wrapped
// value as the receiver. Nil arguments become zero values of the parameter
// type, numeric arguments are converted between numeric kinds. A panic in the
// method is returned as ErrMethodPanicked.
func (f *Fence) Call(name string, args ...any) (out []any, err error) {
	m, ok := f.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchMethod, name)
	}

	in, err := callArgs(m.Type(), args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadArguments, name, err)
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %s: %v", ErrMethodPanicked, name, r)
		}
	}()

	results := m.Call(in)
	out = make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}
	return out, nil
}

// Method returns the wrapped value's method bound to the wrapped value.
func (f *Fence) Method(name string) (reflect.Value, bool) {
	m, ok := f.methods[name]
	return m, ok
}

// Methods returns the sorted names of the forwarded methods.
func (f *Fence) Methods() []string {
	return slices.Sorted(maps.Keys(f.methods))
}

func callArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	n := t.NumIn()
	variadic := t.IsVariadic()

	if (!variadic && len(args) != n) || (variadic && len(args) < n-1) {
		return nil, fmt.Errorf("want %d arguments, got %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(t, i, variadic)

		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}

		av := reflect.ValueOf(a)
		switch {
		case av.Type().AssignableTo(pt):
			in[i] = av
		case isNumeric(av.Kind()) && isNumeric(pt.Kind()):
			in[i] = av.Convert(pt)
		default:
			return nil, fmt.Errorf("argument %d: %s is not assignable to %s", i, av.Type(), pt)
		}
	}

	return in, nil
}

func paramType(t reflect.Type, i int, variadic bool) reflect.Type {
	last := t.NumIn() - 1
	if variadic && i >= last {
		return t.In(last).Elem()
	}
	return t.In(i)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
