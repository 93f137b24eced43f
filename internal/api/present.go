package api

import (
	"reflect"

	"github.com/dmitrymomot/lingo/pkg/classify"
	"github.com/dmitrymomot/lingo/pkg/fence"
	"github.com/dmitrymomot/lingo/pkg/richtext"
)

// Present converts a resolved node into plain data for JSON or YAML output.
// Fences become their snapshot, rich text its HTML, and callables are dropped.
// A container that holds itself is cut off with nil at the point of repetition.
func Present(v any) any {
	return present(v, map[uintptr]struct{}{})
}

func present(v any, stack map[uintptr]struct{}) any {
	switch t := v.(type) {
	case *fence.Fence:
		return present(t.Snapshot(), stack)
	case *richtext.Node:
		return t.HTML()
	case map[string]any:
		ptr := reflect.ValueOf(t).Pointer()
		if _, seen := stack[ptr]; seen {
			return nil
		}
		stack[ptr] = struct{}{}
		defer delete(stack, ptr)

		out := make(map[string]any, len(t))
		for k, c := range t {
			if classify.Of(c) == classify.Callable {
				continue
			}
			out[k] = present(c, stack)
		}
		return out
	case []any:
		if len(t) > 0 {
			ptr := reflect.ValueOf(t).Pointer()
			if _, seen := stack[ptr]; seen {
				return nil
			}
			stack[ptr] = struct{}{}
			defer delete(stack, ptr)
		}

		out := make([]any, 0, len(t))
		for _, c := range t {
			if classify.Of(c) == classify.Callable {
				continue
			}
			out = append(out, present(c, stack))
		}
		return out
	}
	if classify.Of(v) == classify.Callable {
		return nil
	}
	return v
}
