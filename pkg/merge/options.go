package merge

import "log/slog"

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report fallbacks at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTrace makes the engine record leaf provenance into t.
func WithTrace(t *Trace) Option {
	return func(e *Engine) {
		e.trace = t
	}
}
