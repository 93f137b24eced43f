package logger

import (
	"context"
	"log/slog"
)

type languageKey struct{}

// WithLanguage returns a copy of ctx carrying the request language.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// LanguageFromContext returns the language stored by WithLanguage.
func LanguageFromContext(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(languageKey{}).(string)
	return lang, ok && lang != ""
}

// LanguageExtractor adds a "lang" attribute to records logged with a context
// that carries a language.
func LanguageExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if lang, ok := LanguageFromContext(ctx); ok {
			return slog.String("lang", lang), true
		}
		return slog.Attr{}, false
	}
}
