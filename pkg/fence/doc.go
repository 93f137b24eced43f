// Package fence marks a value as excluded from locale fallback merging.
//
// A locale tree is merged with the default locale's tree key by key. Some
// values must not be merged that way: a map of rating labels that has to stay
// exactly as one locale authored it, a rich-content node, a time.Time, a value
// with internal state. Wrapping such a value with New produces a *Fence, which
// the merge engine treats as a leaf and passes through whole.
//
// # Basic Usage
//
//	trees := map[string]locale.Tree{
//		"en": {
//			"language": "english",
//			"ratings": fence.New(map[string]any{
//				"excellent": "excellent",
//				"good":      "good",
//				"bad":       "bad",
//			}),
//		},
//	}
//
// # Reading Through a Fence
//
// At construction the fence takes a snapshot of the wrapped value's data
// members, so it can be read like the original:
//
//	f := fence.New(map[string]any{"excellent": "eccellente"})
//	v, ok := f.Get("excellent") // "eccellente", true
//
// Maps contribute their entries, slices and arrays their indices ("0", "1",
// ...), structs their exported fields and values implementing Accessor the keys
// they list. Member values are not cloned. A member whose read panics is
// skipped and reported by Skipped; construction itself never fails and never
// writes to the wrapped value.
//
// Slices lose their sequence behavior behind a fence: Index and Get work, but
// Len reports the member count and there is no append.
//
// # Methods
//
// The wrapped value's method set is republished as a forwarding table bound to
// the original receiver, so methods observe the original's state:
//
//	f := fence.New(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
//	out, err := f.Call("Format", time.DateOnly) // []any{"2024-01-02"}, nil
//
// # The Original Value
//
// Value returns the exact value passed to New. It is the only supported way to
// unwrap a fence. In path lookups the reserved key ValueKey ("_value") resolves
// to the same value; it never names a snapshot member.
package fence
