package locale

import "log/slog"

// Option configures a Localizer.
type Option func(*Localizer)

// WithDefaultLanguage sets the language every other language falls back to.
// Defaults to "en".
func WithDefaultLanguage(lang string) Option {
	return func(l *Localizer) {
		if lang != "" {
			l.defaultLang = lang
		}
	}
}

// WithLanguage sets the initial language. Without it the best match of the
// detected interface language is used.
func WithLanguage(lang string) Option {
	return func(l *Localizer) {
		l.initial = lang
	}
}

// WithLanguageDetector replaces HostLanguage as the interface language source.
func WithLanguageDetector(fn func() string) Option {
	return func(l *Localizer) {
		if fn != nil {
			l.detect = fn
		}
	}
}

// WithProducers adds lazily evaluated trees.
func WithProducers(producers map[string]Producer) Option {
	return func(l *Localizer) {
		l.producers = producers
	}
}

// WithLogger sets the logger. Fallbacks are logged at debug level, unknown
// languages at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Localizer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithPseudo turns on pseudo-localization of every string leaf outside fences
// and opaque values.
func WithPseudo(enabled bool) Option {
	return func(l *Localizer) {
		l.pseudo = enabled
	}
}

// WithPseudoMultipleLanguages pads pseudo-localized strings by 40%. It implies
// WithPseudo.
func WithPseudoMultipleLanguages(enabled bool) Option {
	return func(l *Localizer) {
		l.pseudoExpanded = enabled
		if enabled {
			l.pseudo = true
		}
	}
}

// WithTrace records leaf provenance on every view.
func WithTrace(enabled bool) Option {
	return func(l *Localizer) {
		l.trace = enabled
	}
}
