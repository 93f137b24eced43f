package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// BestMatch returns the entry of available that serves requested: the same
// tag (case-insensitive), or failing that a tag with the same base language,
// preferring the bare base ("en" for "en-GB"). It returns "" when nothing
// matches.
func BestMatch(requested string, available []string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" || len(available) == 0 {
		return ""
	}
	for _, a := range available {
		if strings.EqualFold(a, requested) {
			return a
		}
	}

	req, err := language.Parse(requested)
	if err != nil {
		return ""
	}
	base, _ := req.Base()

	var candidate string
	for _, a := range available {
		tag, err := language.Parse(a)
		if err != nil {
			continue
		}
		if b, _ := tag.Base(); b != base {
			continue
		}
		if tag.String() == base.String() {
			return a
		}
		if candidate == "" {
			candidate = a
		}
	}
	return candidate
}

// HostLanguage returns the language of the process environment from LC_ALL,
// LC_MESSAGES or LANG, in that order. It returns "en" when none is usable.
func HostLanguage() string {
	return hostLanguage(os.Getenv)
}

func hostLanguage(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			continue
		}
		return tag.String()
	}
	return "en"
}
