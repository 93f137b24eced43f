package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// languageTag represents a parsed language tag with quality value.
type languageTag struct {
	tag     language.Tag
	quality float64
}

// ParseAcceptLanguage parses the Accept-Language header and returns the most
// applicable language from the available languages list.
// Requested tags are tried in quality order and matched with the CLDR language
// matcher, so "en-US" is served by "en" and "sr-Latn" by "sr".
// If no match is found, returns the first available language.
//
// Example header: "en-US,en;q=0.9,pl;q=0.8"
// Available: ["pl", "en", "de"]
// Returns: "en" (highest quality match)
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}

	if header == "" {
		return available[0]
	}

	tags := parseLanguageTags(header)
	if len(tags) == 0 {
		return available[0]
	}

	supported := make([]language.Tag, 0, len(available))
	index := make([]int, 0, len(available))
	for i, avail := range available {
		tag, err := language.Parse(strings.TrimSpace(avail))
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		index = append(index, i)
	}
	if len(supported) == 0 {
		return available[0]
	}

	desired := make([]language.Tag, len(tags))
	for i, t := range tags {
		desired[i] = t.tag
	}

	_, idx, conf := language.NewMatcher(supported).Match(desired...)
	if conf == language.No {
		return available[0]
	}

	return available[index[idx]]
}

// parseLanguageTags parses the Accept-Language header into language tags
// sorted by quality. Malformed entries are skipped rather than failing the
// whole header.
func parseLanguageTags(header string) []languageTag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []languageTag

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)

			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart == "" || langPart == "*" || quality == 0 {
			continue
		}

		tag, err := language.Parse(langPart)
		if err != nil {
			continue
		}
		tags = append(tags, languageTag{tag: tag, quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b languageTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}
