package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dmitrymomot/lingo/pkg/locale"
)

// Translator provides a simplified translation interface with a fixed language and namespace context.
// It wraps an I18n instance and eliminates the need to specify language and namespace for each translation.
type Translator struct {
	i18n      *I18n
	printer   *message.Printer
	language  string
	namespace string
}

// NewTranslator creates a new Translator with the specified language and namespace.
// If language is empty, it defaults to the I18n instance's default language.
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	if i18n == nil {
		panic("i18n: service is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{
		i18n:      i18n,
		printer:   message.NewPrinter(parseTag(language)),
		language:  language,
		namespace: namespace,
	}
}

// T translates a key using the translator's language and namespace context.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// TranslateMessage translates a key with a single placeholder map.
// Its signature matches a validator translate callback, allowing direct use as:
//
//	ve.Translate(translator.TranslateMessage)
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.i18n.T(t.language, t.namespace, key, values)
}

// Tn translates a key with pluralization using the translator's language and namespace context.
func (t *Translator) Tn(key string, n int, placeholders ...M) string {
	return t.i18n.Tn(t.language, t.namespace, key, n, placeholders...)
}

// Value returns the raw resolved node for key.
func (t *Translator) Value(key string) (any, bool) {
	return t.i18n.Value(t.language, t.namespace, key)
}

// Format translates key and fills its {0} and {name} references with args.
func (t *Translator) Format(key string, args ...any) string {
	return Format(t.T(key), args...)
}

// FormatNumber formats a number with the separators of the translator's language.
func (t *Translator) FormatNumber(n float64) string {
	return t.printer.Sprint(number.Decimal(n))
}

// FormatPercent formats a fraction as a percentage (0.5 is 50%).
func (t *Translator) FormatPercent(n float64) string {
	return t.printer.Sprint(number.Percent(n))
}

// Language returns the translator's language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the translator's namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}

// View returns the merged view the translator reads from.
func (t *Translator) View() *locale.View {
	return t.i18n.View(t.language)
}

func parseTag(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und
	}
	return tag
}
