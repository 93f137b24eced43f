package middlewares

import (
	"io"
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger    *slog.Logger
	OnPanic   func(w http.ResponseWriter, r *http.Request, pe *PanicError)
	StackSize int
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverLogger sets the logger panics are reported to.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithRecoverStackSize sets the maximum stack trace size. Zero disables stacks.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithPanicHandler replaces the default 500 response.
func WithPanicHandler(fn func(w http.ResponseWriter, r *http.Request, pe *PanicError)) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.OnPanic = fn
	}
}

// Recover returns middleware that turns a handler panic into a logged
// PanicError and a 500 response. http.ErrAbortHandler is re-panicked so the
// server can abort the connection.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		StackSize: DefaultStackSize,
		OnPanic: func(w http.ResponseWriter, _ *http.Request, _ *PanicError) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				pe := &PanicError{Value: v}
				if cfg.StackSize > 0 {
					stack := make([]byte, cfg.StackSize)
					pe.Stack = stack[:runtime.Stack(stack, false)]
				}
				cfg.Logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", v),
					slog.String("stack", string(pe.Stack)),
				)
				cfg.OnPanic(w, r, pe)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
