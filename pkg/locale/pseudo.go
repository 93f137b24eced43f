package locale

import (
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/lingo/pkg/classify"
)

var accented = map[rune]rune{
	'a': 'á', 'b': 'ƀ', 'c': 'ç', 'd': 'ð', 'e': 'é', 'f': 'ƒ', 'g': 'ĝ', 'h': 'ĥ', 'i': 'î',
	'j': 'ĵ', 'k': 'ķ', 'l': 'ļ', 'm': 'ɱ', 'n': 'ñ', 'o': 'ö', 'p': 'þ', 'q': 'ǫ', 'r': 'ŕ',
	's': 'š', 't': 'ţ', 'u': 'û', 'v': 'ṽ', 'w': 'ŵ', 'x': 'ẋ', 'y': 'ý', 'z': 'ž',
	'A': 'Å', 'B': 'Ɓ', 'C': 'Ç', 'D': 'Ð', 'E': 'É', 'F': 'Ƒ', 'G': 'Ĝ', 'H': 'Ĥ', 'I': 'Î',
	'J': 'Ĵ', 'K': 'Ķ', 'L': 'Ļ', 'M': 'Ṁ', 'N': 'Ñ', 'O': 'Ö', 'P': 'Þ', 'Q': 'Ǫ', 'R': 'Ŕ',
	'S': 'Š', 'T': 'Ţ', 'U': 'Û', 'V': 'Ṽ', 'W': 'Ŵ', 'X': 'Ẋ', 'Y': 'Ý', 'Z': 'Ž',
}

// Pseudo accents the ASCII letters of s and brackets the result, so
// untranslated or truncated strings stand out. Placeholders in braces, such
// as {{name}} and {0}, are kept intact.
func Pseudo(s string) string {
	return "[" + accent(s) + "]"
}

// PseudoExpanded is Pseudo padded by 40% of the rune count, approximating
// languages that run longer than the source.
func PseudoExpanded(s string) string {
	n := int(math.Ceil(float64(utf8.RuneCountInString(s)) * 0.4))
	return "[" + accent(s) + strings.Repeat("~", n) + "]"
}

func accent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 {
			if a, ok := accented[r]; ok {
				r = a
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pseudoize returns a copy of node with every string leaf reachable through
// records and sequences passed to fn. Fences and opaque values are kept.
func pseudoize(node any, fn func(string) string) any {
	p := pseudoWalker{fn: fn, stack: make(map[uintptr]struct{})}
	return p.walk(node)
}

type pseudoWalker struct {
	fn    func(string) string
	stack map[uintptr]struct{}
}

func (p *pseudoWalker) walk(node any) any {
	kind := classify.Of(node)
	if kind == classify.Primitive {
		rv := reflect.ValueOf(node)
		if node != nil && rv.Kind() == reflect.String {
			return reflect.ValueOf(p.fn(rv.String())).Convert(rv.Type()).Interface()
		}
		return node
	}
	if !kind.Recursive() {
		return node
	}

	rv := reflect.ValueOf(node)
	if rv.Kind() != reflect.Array {
		if rv.IsNil() {
			return node
		}
		ptr := rv.Pointer()
		if _, onStack := p.stack[ptr]; onStack {
			return node
		}
		p.stack[ptr] = struct{}{}
		defer delete(p.stack, ptr)
	}

	if kind == classify.Plain {
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), p.elem(iter.Value(), rv.Type().Elem()))
		}
		return out.Interface()
	}

	var out reflect.Value
	if rv.Kind() == reflect.Array {
		out = reflect.New(rv.Type()).Elem()
	} else {
		out = reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	}
	for i := range rv.Len() {
		out.Index(i).Set(p.elem(rv.Index(i), rv.Type().Elem()))
	}
	return out.Interface()
}

func (p *pseudoWalker) elem(v reflect.Value, t reflect.Type) reflect.Value {
	res := p.walk(v.Interface())
	if res == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(res)
}
