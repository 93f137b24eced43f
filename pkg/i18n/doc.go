// Package i18n serves translations from merged, per-language content views.
//
// Every language is merged with its fallback chain once, when the instance is
// built: a regional language such as "pt-BR" falls back to "pt", which falls
// back to the default language. Lookups read the merged views and never walk
// a fallback chain at request time. Instances are immutable and safe for
// concurrent use.
//
// # Basic Usage
//
//	svc, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithTranslations("en", "app", map[string]any{
//			"welcome": "Welcome to our application",
//			"goodbye": "Goodbye, {{name}}!",
//		}),
//		i18n.WithTranslations("es", "app", map[string]any{
//			"goodbye": "¡Adiós, {{name}}!",
//		}),
//	)
//
//	svc.T("es", "app", "goodbye", i18n.M{"name": "Juan"}) // "¡Adiós, Juan!"
//	svc.T("es", "app", "welcome")                         // "Welcome to our application"
//
// # Sources
//
// Content can come from any source.Source:
//
//	svc, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithSource(ctx, source.Multi(
//			source.Dir("locales"),
//			source.NewPostgres(pool),
//		)),
//	)
//
// WithJSONDir and WithYAMLDir read {lang}/{namespace}.{ext} files from an fs.FS.
//
// # Structured Content
//
// Content is kept as authored. Keys may address nested records and sequence
// elements ("buttons.save", "steps[2].title"). Fences and rich text nodes
// merge as single leaves, and Value returns them unchanged:
//
//	card, _ := svc.Value("de", "pricing", "card") // *fence.Fence
//
// # Pluralization
//
// Tn picks the CLDR cardinal form for the language, with "count" injected as
// a placeholder. An explicit "zero" form is used for zero when present:
//
//	// items: {zero: "No items", one: "{{count}} item", other: "{{count}} items"}
//	svc.Tn("en", "cart", "items", 0) // "No items"
//	svc.Tn("en", "cart", "items", 5) // "5 items"
//
// # Translator
//
// A Translator fixes the language and namespace:
//
//	tr := i18n.NewTranslator(svc, "de", "ui")
//	tr.T("page.title")
//	tr.Format("greeting", i18n.M{"name": "Anna"}) // {name} references
//	tr.FormatNumber(1234.5)                        // "1.234,5"
//
// # Accept-Language Header
//
//	lang := i18n.ParseAcceptLanguage("es-ES,es;q=0.9,en;q=0.8", svc.Languages())
package i18n
