package merge

import (
	"github.com/dmitrymomot/lingo/pkg/classify"
)

// Origin tells where a resolved leaf came from.
type Origin uint8

const (
	// OriginActive means the active tree supplied a primitive leaf.
	OriginActive Origin = iota
	// OriginDefault means the active tree lacked the node and the default
	// tree supplied it wholesale.
	OriginDefault
	// OriginFenced means the active tree supplied a fence that was kept as is.
	OriginFenced
	// OriginOpaque means the active tree supplied a callable or opaque value.
	OriginOpaque
	// OriginCycle means the active tree referenced one of its ancestors and
	// the reference was kept without descending.
	OriginCycle
)

var originNames = [...]string{
	OriginActive:  "active",
	OriginDefault: "default",
	OriginFenced:  "fenced",
	OriginOpaque:  "opaque",
	OriginCycle:   "cycle",
}

func (o Origin) String() string {
	if int(o) < len(originNames) {
		return originNames[o]
	}
	return "unknown"
}

// Entry is one traced leaf.
type Entry struct {
	Path   string
	Origin Origin
	Kind   classify.Kind
}

// Trace records the provenance of every leaf produced by a merge.
// A Trace is filled by a single merge; reading it afterwards from several
// goroutines is safe, recording concurrently is not.
type Trace struct {
	entries []Entry
	index   map[string]int
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{index: make(map[string]int)}
}

func (t *Trace) record(p Path, o Origin, k classify.Kind) {
	key := p.String()
	if i, ok := t.index[key]; ok {
		t.entries[i] = Entry{Path: key, Origin: o, Kind: k}
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Path: key, Origin: o, Kind: k})
}

// Entries returns the traced leaves in walk order.
func (t *Trace) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Origin returns the origin recorded for the rendered path.
func (t *Trace) Origin(path string) (Origin, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[path]
	if !ok {
		return 0, false
	}
	return t.entries[i].Origin, true
}

// Fallbacks returns the paths that were filled from the default tree.
func (t *Trace) Fallbacks() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, e := range t.entries {
		if e.Origin == OriginDefault {
			out = append(out, e.Path)
		}
	}
	return out
}

// Len returns the number of traced leaves.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
