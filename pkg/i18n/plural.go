package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralRule determines which plural form to use for a given count.
type PluralRule func(n int) string

// Plural category constants as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

var formNames = map[plural.Form]string{
	plural.Zero:  PluralZero,
	plural.One:   PluralOne,
	plural.Two:   PluralTwo,
	plural.Few:   PluralFew,
	plural.Many:  PluralMany,
	plural.Other: PluralOther,
}

// DefaultPluralRule distinguishes one from everything else.
var DefaultPluralRule PluralRule = func(n int) string {
	if n == 1 || n == -1 {
		return PluralOne
	}
	return PluralOther
}

// CLDRPluralRule returns the cardinal plural rule CLDR defines for tag.
func CLDRPluralRule(tag language.Tag) PluralRule {
	return func(n int) string {
		if n < 0 {
			n = -n
		}
		form := plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0)
		if name, ok := formNames[form]; ok {
			return name
		}
		return PluralOther
	}
}

// GetPluralRuleForLanguage returns the CLDR plural rule for a language code
// such as "en", "pl" or "pt-BR".
// Falls back to DefaultPluralRule for codes that do not parse.
func GetPluralRuleForLanguage(lang string) PluralRule {
	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultPluralRule
	}
	return CLDRPluralRule(tag)
}

// SupportedPluralForms returns which plural forms a rule actually uses.
// This is useful for validation when loading translations.
func SupportedPluralForms(rule PluralRule) []string {
	forms := make(map[string]bool)

	testNumbers := []int{0, 1, 2, 3, 4, 5, 6, 10, 11, 12, 13, 14, 20, 21, 22, 100, 101, 102, 1000, 1000000}

	for _, n := range testNumbers {
		forms[rule(n)] = true
	}

	order := []string{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther}
	var result []string
	for _, form := range order {
		if forms[form] {
			result = append(result, form)
		}
	}

	return result
}
