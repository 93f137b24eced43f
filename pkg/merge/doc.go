// Package merge resolves an active locale tree against a default locale tree.
//
// The engine walks both trees pairwise from the root. Plain records are merged
// key by key and sequences element by element; every other node is a leaf. A
// present active leaf always wins, even when it is an empty string or nil. A
// node the active tree lacks entirely is replaced by the default node as a
// whole, without walking it.
//
// # Basic Usage
//
//	active := map[string]any{"title": "Ciao"}
//	def := map[string]any{"title": "Hello", "footer": "Bye"}
//
//	merged := merge.Resolve(active, def)
//	// map[string]any{"title": "Ciao", "footer": "Bye"}
//
// # Leaves
//
// Fences, funcs and opaque values (structs, pointers, named map and slice
// types, time.Time) are never descended into. The active value is returned as
// is, so fenced content keeps its identity across merges.
//
// # Sequences
//
// A merged sequence has the length of the active sequence. Elements the
// default has past that length are dropped.
//
// # Tracing
//
// An Engine built WithTrace records where each leaf came from:
//
//	tr := merge.NewTrace()
//	e := merge.New(merge.WithTrace(tr), merge.WithLogger(logger))
//	e.Resolve(active, true, def, true)
//	tr.Fallbacks() // ["footer"]
//
// Paths use the kinded notation menu.items[0].title; keys containing path
// syntax are quoted as ["a.b"].
package merge
