package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"LINGO_SENTRY_DSN"`
	Environment string `env:"LINGO_SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level
}

// NewWithSentry creates a logger that sends logs to both the configured output and Sentry.
// If DSN is empty, only local logging is enabled (graceful fallback for local dev).
// Context extractors are applied to logs sent to both destinations.
func NewWithSentry(cfg Config, sc SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	local := newHandler(cfg)

	if sc.DSN == "" {
		return slog.New(WithContext(local, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sc.DSN,
		Environment: sc.Environment,
		EnableLogs:  true,
	}); err != nil {
		// Graceful degradation: keep logging locally if Sentry init fails
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(WithContext(local, extractors...))
	}

	// Errors create Issues; warnings are kept as searchable logs.
	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if sc.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(WithContext(fanout{local, sentryHandler}, extractors...))
}
