// Package logger builds the structured loggers used across lingo.
//
// It extends log/slog with context-based attribute injection and optional
// Sentry reporting:
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug, Format: logger.FormatText},
//		logger.LanguageExtractor(),
//	)
//	ctx := logger.WithLanguage(ctx, "de-AT")
//	log.DebugContext(ctx, "locale fallback", slog.String("path", "app.title"))
//	// level=DEBUG msg="locale fallback" path=app.title lang=de-AT
//
// # Context Extractors
//
// A ContextExtractor turns a value carried by the context into an attribute.
// Extractors run on every log call, so request-scoped values stay fresh.
// WithContext wraps any slog.Handler with a set of extractors.
//
// # Sentry Integration
//
// NewWithSentry sends errors (and optionally warnings) to Sentry in addition
// to the local output. With an empty DSN it returns a local-only logger, so
// the same code path works in development.
//
//	log := logger.NewWithSentry(cfg, logger.SentryConfig{
//		DSN:      os.Getenv("LINGO_SENTRY_DSN"),
//		MinLevel: slog.LevelWarn,
//	})
package logger
