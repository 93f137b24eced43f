package merge

import (
	"slices"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a record key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path addresses a node in a locale tree, rendered as a kinded path:
// "menu.items[0].title". Keys that contain path syntax are quoted: ["a.b"].
// The zero Path is the root.
type Path struct {
	segs []Segment
}

// Key returns p extended by a record key.
func (p Path) Key(k string) Path {
	return Path{segs: append(slices.Clip(p.segs), Segment{Key: k})}
}

// Index returns p extended by a sequence index.
func (p Path) Index(i int) Path {
	return Path{segs: append(slices.Clip(p.segs), Segment{Index: i, IsIndex: true})}
}

// Join returns p followed by the steps of q.
func (p Path) Join(q Path) Path {
	return Path{segs: append(slices.Clip(p.segs), q.segs...)}
}

// Segments returns a copy of the path steps.
func (p Path) Segments() []Segment {
	return slices.Clone(p.segs)
}

// Len returns the number of steps.
func (p Path) Len() int {
	return len(p.segs)
}

// IsRoot reports whether p addresses the tree root.
func (p Path) IsRoot() bool {
	return len(p.segs) == 0
}

// String renders p. The root renders as "".
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p.segs {
		switch {
		case s.IsIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		case needsQuote(s.Key):
			b.WriteByte('[')
			b.WriteString(strconv.Quote(s.Key))
			b.WriteByte(']')
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Key)
		}
	}
	return b.String()
}

// ParsePath parses a kinded path produced by Path.String. Numeric steps
// written with dots ("items.0") are parsed as keys; lookups decide whether a
// key addresses a sequence index.
func ParsePath(s string) (Path, error) {
	var p Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			if i == 0 || i == len(s)-1 || s[i+1] == '.' || s[i+1] == '[' {
				return Path{}, pathError(s, i)
			}
			i++
		case '[':
			seg, n, err := parseBracket(s, i)
			if err != nil {
				return Path{}, err
			}
			p.segs = append(p.segs, seg)
			i += n
		case ']':
			return Path{}, pathError(s, i)
		default:
			end := i
			for end < len(s) && s[end] != '.' && s[end] != '[' && s[end] != ']' {
				end++
			}
			p.segs = append(p.segs, Segment{Key: s[i:end]})
			i = end
		}
	}
	return p, nil
}

// MustParsePath is ParsePath for constant paths. It panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseBracket(s string, start int) (Segment, int, error) {
	rest := s[start+1:]
	if strings.HasPrefix(rest, `"`) {
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return Segment{}, 0, pathError(s, start)
		}
		if len(rest) == len(quoted) || rest[len(quoted)] != ']' {
			return Segment{}, 0, pathError(s, start)
		}
		key, err := strconv.Unquote(quoted)
		if err != nil {
			return Segment{}, 0, pathError(s, start)
		}
		return Segment{Key: key}, len(quoted) + 2, nil
	}

	end := strings.IndexByte(rest, ']')
	if end <= 0 {
		return Segment{}, 0, pathError(s, start)
	}
	idx, err := strconv.Atoi(rest[:end])
	if err != nil || idx < 0 {
		return Segment{}, 0, pathError(s, start)
	}
	return Segment{Index: idx, IsIndex: true}, end + 2, nil
}

func needsQuote(k string) bool {
	return k == "" || strings.ContainsAny(k, ".[]\" \t\n")
}
