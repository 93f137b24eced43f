package middlewares

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/logger"
)

type (
	translatorKey struct{}
	languageKey   struct{}
)

// LanguageSource reads a candidate language from a request.
type LanguageSource func(r *http.Request) (string, bool)

// FromCookie reads the language from the named cookie.
func FromCookie(name string) LanguageSource {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// FromQuery reads the language from the named query parameter.
func FromQuery(name string) LanguageSource {
	return func(r *http.Request) (string, bool) {
		v := r.URL.Query().Get(name)
		return v, v != ""
	}
}

// FromURLParam reads the language from a chi route parameter such as
// "/v/{lang}/*".
func FromURLParam(name string) LanguageSource {
	return func(r *http.Request) (string, bool) {
		v := chi.URLParam(r, name)
		return v, v != ""
	}
}

// FromAcceptLanguage matches the Accept-Language header against the available
// languages.
func FromAcceptLanguage(available []string) LanguageSource {
	return func(r *http.Request) (string, bool) {
		header := r.Header.Get("Accept-Language")
		if header == "" {
			return "", false
		}
		lang := i18n.ParseAcceptLanguage(header, available)
		return lang, lang != ""
	}
}

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	Namespace string
	Sources   []LanguageSource
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nNamespace sets the namespace of the context translator.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Namespace = ns
	}
}

// WithLanguageSources replaces the default cookie, query and Accept-Language
// chain.
func WithLanguageSources(sources ...LanguageSource) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Sources = sources
	}
}

// I18n returns middleware that resolves the request language, binds a
// Translator and the language's merged view, and stores them in the request
// context. The first source whose value names a served language wins; a
// regional tag such as "de-AT" is kept when its base language is served.
// Without a match the default language is used.
func I18n(svc *i18n.I18n, opts ...I18nOption) func(http.Handler) http.Handler {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Sources == nil {
		cfg.Sources = []LanguageSource{
			FromCookie("lang"),
			FromQuery("lang"),
			FromAcceptLanguage(svc.Languages()),
		}
	}

	served := svc.Languages()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := svc.DefaultLanguage()
			for _, src := range cfg.Sources {
				if v, ok := src(r); ok {
					if match, ok := servedLanguage(v, served); ok {
						lang = match
						break
					}
				}
			}

			tr := i18n.NewTranslator(svc, lang, cfg.Namespace)

			ctx := context.WithValue(r.Context(), translatorKey{}, tr)
			ctx = context.WithValue(ctx, languageKey{}, lang)
			ctx = locale.WithView(ctx, tr.View())
			ctx = logger.WithLanguage(ctx, lang)

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func servedLanguage(v string, served []string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	for _, lang := range served {
		if strings.EqualFold(lang, v) {
			return lang, true
		}
	}
	base, _, found := strings.Cut(v, "-")
	if found && slices.ContainsFunc(served, func(lang string) bool { return strings.EqualFold(lang, base) }) {
		return v, true
	}
	return "", false
}

// GetTranslator returns the Translator stored by I18n, or nil.
func GetTranslator(ctx context.Context) *i18n.Translator {
	if v, ok := ctx.Value(translatorKey{}).(*i18n.Translator); ok {
		return v
	}
	return nil
}

// GetLanguage returns the language resolved by I18n, or "".
func GetLanguage(ctx context.Context) string {
	if v, ok := ctx.Value(languageKey{}).(string); ok {
		return v
	}
	return ""
}
