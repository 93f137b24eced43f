package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/merge"
	"github.com/dmitrymomot/lingo/pkg/source"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

// I18n serves translations from per-language views. Every language is merged
// with its fallback chain once, in New; lookups are reads on the merged views.
// It is immutable after creation, making it safe for concurrent use.
type I18n struct {
	// Authored content per language: lang -> namespace -> content.
	trees map[string]locale.Tree

	// Merged view per language, built in New.
	views map[string]*locale.View

	// Plural rules per language.
	pluralRules map[string]PluralRule

	// Optional handler called when a translation key is not found.
	// Useful for detecting untranslated keys during development or monitoring gaps in translations.
	missingKeyHandler func(lang, namespace, key string)

	logger *slog.Logger

	// Default/fallback language.
	defaultLang string

	// Pre-computed list of available languages.
	languages []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
// All configuration happens during construction, making the instance
// immutable and thread-safe from creation.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		trees:       make(map[string]locale.Tree),
		views:       make(map[string]*locale.View),
		pluralRules: make(map[string]PluralRule),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultLang: DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	i.languages = i.buildLanguagesList()
	i.buildViews()

	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages for the I18n instance.
// The default language will always be included and placed first in the list.
// Other languages will be sorted alphabetically.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		if len(langs) == 0 {
			return nil
		}

		langSet := make(map[string]struct{})
		for _, lang := range langs {
			if lang != "" {
				langSet[lang] = struct{}{}
			}
		}
		delete(langSet, i.defaultLang)

		i.languages = append([]string{i.defaultLang}, slices.Sorted(maps.Keys(langSet))...)
		return nil
	}
}

// WithTranslations loads content for a specific language and namespace.
// Content may be nested and may hold fences, rich text or any other value;
// nothing is flattened. Loading the same namespace twice merges the later
// content over the earlier one.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		if len(translations) == 0 {
			return nil
		}
		i.addNamespace(lang, namespace, translations)
		return nil
	}
}

// WithContent loads whole language trees keyed by language, each tree keyed
// by namespace, as returned by a source.
func WithContent(trees map[string]locale.Tree) Option {
	return func(i *I18n) error {
		for lang, tree := range trees {
			if lang == "" {
				return ErrEmptyLanguage
			}
			for ns, content := range tree {
				if ns == "" {
					return ErrEmptyNamespace
				}
				m, ok := content.(map[string]any)
				if !ok {
					return fmt.Errorf("%w: namespace %q of %q is %T", ErrInvalidContent, ns, lang, content)
				}
				i.addNamespace(lang, ns, m)
			}
		}
		return nil
	}
}

// WithSource loads every language tree src returns.
func WithSource(ctx context.Context, src source.Source) Option {
	return func(i *I18n) error {
		trees, err := src.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading translations: %w", err)
		}
		return WithContent(trees)(i)
	}
}

// WithPluralRule registers a custom plural rule for a language.
func WithPluralRule(lang string, rule PluralRule) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		i.pluralRules[lang] = rule
		return nil
	}
}

// WithMissingKeyHandler sets a handler function that will be called when a translation
// key is not found in any language (including the default fallback).
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// WithLogger sets the logger used while building views. Fallbacks are logged
// at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(i *I18n) error {
		if logger != nil {
			i.logger = logger
		}
		return nil
	}
}

func (i *I18n) addNamespace(lang, namespace string, content map[string]any) {
	tree, ok := i.trees[lang]
	if !ok {
		tree = make(locale.Tree)
		i.trees[lang] = tree
	}
	if prev, ok := tree[namespace]; ok {
		tree[namespace] = merge.Resolve(content, prev)
	} else {
		tree[namespace] = content
	}

	if _, exists := i.pluralRules[lang]; !exists {
		i.pluralRules[lang] = GetPluralRuleForLanguage(lang)
	}
}

// buildViews merges every language over its fallback. A regional language
// whose base language has content falls back to the base view, which in turn
// falls back to the default language.
func (i *I18n) buildViews() {
	catalog := locale.NewCatalog(i.defaultLang, i.trees, nil)

	langs := slices.Sorted(maps.Keys(i.trees))
	slices.SortStableFunc(langs, func(a, b string) int {
		return strings.Count(a, "-") - strings.Count(b, "-")
	})
	if _, ok := i.trees[i.defaultLang]; !ok {
		langs = append([]string{i.defaultLang}, langs...)
	}

	for _, lang := range langs {
		e := merge.New(merge.WithLogger(i.logger.With(slog.String("lang", lang))))
		base := baseLanguage(lang)
		if base == lang || base == i.defaultLang {
			i.views[lang] = catalog.Resolve(lang, e)
			continue
		}
		parent, ok := i.views[base]
		if !ok {
			i.views[lang] = catalog.Resolve(lang, e)
			continue
		}
		i.views[lang] = catalog.ResolveOver(lang, parent, e)
	}
}

// View returns the merged view for lang: the exact language, then its base
// language, then the default language.
func (i *I18n) View(lang string) *locale.View {
	if v, ok := i.views[lang]; ok {
		return v
	}
	if base := baseLanguage(lang); base != lang {
		if v, ok := i.views[base]; ok {
			return v
		}
	}
	return i.views[i.defaultLang]
}

// Value returns the raw resolved node for key. Fences, rich text and funcs
// are returned as authored.
func (i *I18n) Value(lang, namespace, key string) (any, bool) {
	return lookup(i.View(lang), namespace, key)
}

// T retrieves a translation for the given language, namespace, and key.
// Placeholders in the translation are replaced with values from the provided maps.
// Falls back to the base language, then the default language.
// Returns the key itself if no translation exists.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if n, ok := lookup(i.View(lang), namespace, key); ok {
		if text, ok := leafText(n); ok {
			return replacePlaceholdersWithMerge(text, placeholders...)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}

	return key
}

// Tn retrieves a pluralized translation for the given count.
// It automatically selects the appropriate plural form based on the language's plural rule
// and injects the count as a placeholder. An explicit "zero" form is used for
// zero when the translation has one.
func (i *I18n) Tn(lang, namespace, key string, n int, placeholders ...M) string {
	view := i.View(lang)
	form := i.pluralRule(lang)(n)

	forms := append([]string{form}, getPluralFallbackForms(form)...)
	if n == 0 && form != PluralZero {
		forms = append([]string{PluralZero}, forms...)
	}

	for _, f := range forms {
		node, ok := lookup(view, namespace, key+"."+f)
		if !ok {
			continue
		}
		text, ok := leafText(node)
		if !ok {
			continue
		}

		mergedPlaceholders := M{"count": n}
		for _, p := range placeholders {
			maps.Copy(mergedPlaceholders, p)
		}
		return ReplacePlaceholders(text, mergedPlaceholders)
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

func (i *I18n) pluralRule(lang string) PluralRule {
	if rule, ok := i.pluralRules[lang]; ok {
		return rule
	}
	if base := baseLanguage(lang); base != lang {
		if rule, ok := i.pluralRules[base]; ok {
			return rule
		}
	}
	if rule, ok := i.pluralRules[i.defaultLang]; ok {
		return rule
	}
	return GetPluralRuleForLanguage(lang)
}

// Languages returns the list of available languages.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the default/fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) buildLanguagesList() []string {
	if len(i.languages) > 0 {
		return i.languages
	}
	others := make(map[string]struct{}, len(i.trees))
	for lang := range i.trees {
		others[lang] = struct{}{}
	}
	delete(others, i.defaultLang)
	return append([]string{i.defaultLang}, slices.Sorted(maps.Keys(others))...)
}

func lookup(view *locale.View, namespace, key string) (any, bool) {
	p, err := merge.ParsePath(key)
	if err != nil {
		return nil, false
	}
	return locale.Lookup(view.Root(), merge.Path{}.Key(namespace).Join(p))
}

// leafText renders primitives and text-like leaves. Records and sequences have
// no text.
func leafText(n any) (string, bool) {
	if s, ok := n.(string); ok {
		return s, true
	}
	if rv := reflect.ValueOf(n); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	text := locale.Text(n)
	return text, text != "" || n == nil
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(template, merged)
}

// baseLanguage strips the region from a language tag (e.g., "en-US" → "en").
// Returns the input unchanged if there is no region.
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}

func getPluralFallbackForms(form string) []string {
	switch form {
	case PluralZero:
		return []string{PluralOther}
	case PluralOne:
		return []string{PluralOther}
	case PluralTwo:
		return []string{PluralFew, PluralMany, PluralOther}
	case PluralFew:
		return []string{PluralMany, PluralOther}
	case PluralMany:
		return []string{PluralOther}
	case PluralOther:
		return []string{}
	default:
		return []string{PluralOther}
	}
}
