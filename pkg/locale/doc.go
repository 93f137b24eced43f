// Package locale materializes per-language views of localized content with
// fallback to a default language.
//
// Content is authored as one Tree per language. A View merges the tree of the
// requested language over the default tree once, at switch time; reads on a
// View are plain map lookups.
//
// # Basic Usage
//
//	strings := locale.New(map[string]locale.Tree{
//		"en": {
//			"title":   "Hello",
//			"ratings": fence.New(map[string]any{"good": "good", "bad": "bad"}),
//		},
//		"it": {
//			"title":   "Ciao",
//			"ratings": fence.New(map[string]any{"good": "buono"}),
//		},
//	}, locale.WithDefaultLanguage("en"))
//
//	strings.SetLanguage("it")
//	strings.String("title")       // "Ciao"
//	strings.Has("ratings.bad")    // false: fenced nodes are not merged
//
// # Unknown Languages
//
// Switching to a language without content resolves to the default tree as a
// whole. View.Fallback reports this and View.Resolved names the default.
//
// # Paths
//
// Get accepts kinded paths such as "menu.items[0].title". Fences are read
// through their snapshot; "ratings._value" returns the fenced original.
//
// # Pseudo-localization
//
// WithPseudo accents every string reachable through records and sequences, so
// hard-coded text stands out during testing. Fences and opaque values are left
// alone. WithPseudoMultipleLanguages also pads strings by 40%.
//
// # Concurrency
//
// A Localizer publishes views with an atomic pointer swap. Concurrent readers
// observe either the old or the new view, never a partial one.
package locale
