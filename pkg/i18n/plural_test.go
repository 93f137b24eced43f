package i18n_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestDefaultPluralRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n        int
		expected string
	}{
		{0, i18n.PluralOther},
		{1, i18n.PluralOne},
		{2, i18n.PluralOther},
		{100, i18n.PluralOther},
		{-1, i18n.PluralOne},
		{-5, i18n.PluralOther},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, i18n.DefaultPluralRule(tt.n))
		})
	}
}

func TestCLDRPluralRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag      language.Tag
		n        int
		expected string
	}{
		{language.English, 0, i18n.PluralOther},
		{language.English, 1, i18n.PluralOne},
		{language.English, -1, i18n.PluralOne},
		{language.English, 2, i18n.PluralOther},
		{language.Polish, 0, i18n.PluralMany},
		{language.Polish, 1, i18n.PluralOne},
		{language.Polish, 2, i18n.PluralFew},
		{language.Polish, 5, i18n.PluralMany},
		{language.Polish, 12, i18n.PluralMany},
		{language.Polish, 22, i18n.PluralFew},
		{language.Russian, 1, i18n.PluralOne},
		{language.Russian, 21, i18n.PluralOne},
		{language.Russian, 3, i18n.PluralFew},
		{language.Russian, 11, i18n.PluralMany},
		{language.French, 0, i18n.PluralOne},
		{language.French, 1, i18n.PluralOne},
		{language.French, 2, i18n.PluralOther},
		{language.Japanese, 1, i18n.PluralOther},
		{language.Arabic, 0, i18n.PluralZero},
		{language.Arabic, 1, i18n.PluralOne},
		{language.Arabic, 2, i18n.PluralTwo},
		{language.Arabic, 3, i18n.PluralFew},
		{language.Arabic, 11, i18n.PluralMany},
		{language.Arabic, 100, i18n.PluralOther},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_n=%d", tt.tag, tt.n), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, i18n.CLDRPluralRule(tt.tag)(tt.n))
		})
	}
}

func TestGetPluralRuleForLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang     string
		n        int
		expected string
	}{
		{"en", 1, i18n.PluralOne},
		{"en-US", 2, i18n.PluralOther},
		{"EN", 1, i18n.PluralOne},
		{"pl", 2, i18n.PluralFew},
		{"ru", 5, i18n.PluralMany},
		{"cs", 3, i18n.PluralFew},
		{"uk", 12, i18n.PluralMany},
		{"fr", 0, i18n.PluralOne},
		{"pt-BR", 2, i18n.PluralOther},
		{"de", 1, i18n.PluralOne},
		{"sv", 2, i18n.PluralOther},
		{"ja", 0, i18n.PluralOther},
		{"zh", 1, i18n.PluralOther},
		{"ar", 2, i18n.PluralTwo},
		{"", 1, i18n.PluralOne},
		{"", 2, i18n.PluralOther},
		{"!!", 1, i18n.PluralOne},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("lang=%s_n=%d", tt.lang, tt.n), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, i18n.GetPluralRuleForLanguage(tt.lang)(tt.n))
		})
	}
}

func TestSupportedPluralForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rule     i18n.PluralRule
		expected []string
	}{
		{"Default", i18n.DefaultPluralRule, []string{i18n.PluralOne, i18n.PluralOther}},
		{"English", i18n.GetPluralRuleForLanguage("en"), []string{i18n.PluralOne, i18n.PluralOther}},
		{"Polish", i18n.GetPluralRuleForLanguage("pl"), []string{i18n.PluralOne, i18n.PluralFew, i18n.PluralMany}},
		{"Japanese", i18n.GetPluralRuleForLanguage("ja"), []string{i18n.PluralOther}},
		{"Arabic", i18n.GetPluralRuleForLanguage("ar"), []string{i18n.PluralZero, i18n.PluralOne, i18n.PluralTwo, i18n.PluralFew, i18n.PluralMany, i18n.PluralOther}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, i18n.SupportedPluralForms(tt.rule))
		})
	}
}

func BenchmarkPluralRules(b *testing.B) {
	rules := map[string]i18n.PluralRule{
		"default": i18n.DefaultPluralRule,
		"en":      i18n.GetPluralRuleForLanguage("en"),
		"pl":      i18n.GetPluralRuleForLanguage("pl"),
		"ar":      i18n.GetPluralRuleForLanguage("ar"),
	}

	testNumbers := []int{0, 1, 2, 3, 5, 11, 21, 100, 1000}

	for name, rule := range rules {
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				for _, n := range testNumbers {
					_ = rule(n)
				}
			}
		})
	}
}
