package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats accepted by Config.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config selects the level, encoding and destination of a logger.
type Config struct {
	Level  slog.Level
	Format string    // "json" (default) or "text"
	Output io.Writer // defaults to os.Stderr
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

// New creates a logger with optional context extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(WithContext(newHandler(cfg), extractors...))
}

func newHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, FormatText) {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
