package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, logger.ErrInvalidLevel)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json with language extractor", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf}, logger.LanguageExtractor())

		ctx := logger.WithLanguage(context.Background(), "de-AT")
		log.InfoContext(ctx, "resolved", slog.String("key", "app.title"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "resolved", rec["msg"])
		assert.Equal(t, "de-AT", rec["lang"])
		assert.Equal(t, "app.title", rec["key"])
	})

	t.Run("text format respects level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: slog.LevelWarn, Format: logger.FormatText, Output: &buf})

		log.Info("hidden")
		log.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})

	t.Run("no language means no attribute", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf}, logger.LanguageExtractor(), nil)

		log.InfoContext(logger.WithLanguage(context.Background(), ""), "plain")
		assert.NotContains(t, buf.String(), `"lang"`)
	})

	t.Run("sentry without dsn logs locally", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithSentry(logger.Config{Output: &buf}, logger.SentryConfig{})

		log.Error("boom")
		assert.Contains(t, buf.String(), `"msg":"boom"`)
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	t.Run("no extractors returns the handler", func(t *testing.T) {
		t.Parallel()
		h := slog.NewTextHandler(&bytes.Buffer{}, nil)
		assert.Same(t, h, logger.WithContext(h, nil))
	})

	t.Run("extracted attributes survive groups", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		h := logger.WithContext(slog.NewJSONHandler(&buf, nil), logger.LanguageExtractor())
		log := slog.New(h).With(slog.String("component", "merge")).WithGroup("locale")

		log.InfoContext(logger.WithLanguage(context.Background(), "fr"), "fallback", slog.String("path", "a.b"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "merge", rec["component"])
		group, ok := rec["locale"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "fr", group["lang"])
		assert.Equal(t, "a.b", group["path"])
	})
}
