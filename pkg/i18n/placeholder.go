package i18n

import (
	"fmt"
	"strconv"
	"strings"
)

// M holds placeholder values by name.
type M map[string]any

// ReplacePlaceholders replaces placeholders in the template string with values
// from the provided map. Placeholders use the format {{name}}; spaces inside
// the braces are ignored.
// If a placeholder is not found in the map, it remains unchanged.
//
// Example:
//
//	template: "Hello, {{name}}! You have {{count}} messages."
//	placeholders: M{"name": "John", "count": 5}
//	returns: "Hello, John! You have 5 messages."
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) < 1 || !strings.Contains(template, "{{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+2:], "}}")
		if end < 0 {
			break
		}
		end += start + 2

		b.WriteString(rest[:start])
		name := strings.TrimSpace(rest[start+2 : end])
		if value, ok := placeholders[name]; ok {
			b.WriteString(stringify(value))
		} else {
			b.WriteString(rest[start : end+2])
		}
		rest = rest[end+2:]
	}
	b.WriteString(rest)

	return b.String()
}

// Format fills single-brace references in template. {0}, {1} and so on refer
// to args by position; {name} refers to a key when the only argument is an M
// or a map[string]any. References without a value are left as written.
//
//	Format("{0} of {1}", 3, 10)                  // "3 of 10"
//	Format("Hi {name}", M{"name": "Ann"})       // "Hi Ann"
func Format(template string, args ...any) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var named map[string]any
	if len(args) == 1 {
		switch m := args[0].(type) {
		case M:
			named = m
		case map[string]any:
			named = m
		}
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			break
		}
		end += start

		b.WriteString(rest[:start])
		ref := rest[start+1 : end]
		if value, ok := formatArg(ref, args, named); ok {
			b.WriteString(stringify(value))
		} else {
			b.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}
	b.WriteString(rest)

	return b.String()
}

func formatArg(ref string, args []any, named map[string]any) (any, bool) {
	if ref == "" || strings.ContainsAny(ref, "{ \t") {
		return nil, false
	}
	if idx, err := strconv.Atoi(ref); err == nil {
		if idx < 0 || idx >= len(args) {
			return nil, false
		}
		return args[idx], true
	}
	if named == nil {
		return nil, false
	}
	v, ok := named[ref]
	return v, ok
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
