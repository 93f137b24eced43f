// Package lingo resolves localized content by merging each language's tree
// over a default language's tree.
//
// Keys a language defines win. Keys it lacks are taken from the default
// language, recursively through plain records and by index through
// sequences. A value wrapped with [Fence] is taken as it is: the default
// never fills anything inside it.
//
//	trees := map[string]lingo.Tree{
//	    "en": {"menu": map[string]any{"save": "Save", "cancel": "Cancel"}},
//	    "de": {"menu": map[string]any{"save": "Speichern"}},
//	}
//	l := lingo.New(trees, lingo.WithDefaultLanguage("en"), lingo.WithLanguage("de"))
//	l.String("menu.save")   // "Speichern"
//	l.String("menu.cancel") // "Cancel"
//
// The packages under pkg/ carry the pieces: pkg/fence and pkg/classify decide
// what is merged, pkg/merge merges, pkg/locale builds views, pkg/i18n serves
// translations with plurals, and pkg/source loads trees from files,
// PostgreSQL, Redis or S3.
package lingo
