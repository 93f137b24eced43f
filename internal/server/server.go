package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	defaultAddress           = ":8080"
	defaultShutdownTimeout   = 30 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
)

// Config describes one HTTP server run.
type Config struct {
	Handler         http.Handler
	Address         string
	Logger          *slog.Logger
	ShutdownTimeout time.Duration

	// ShutdownHooks run in order after the server has drained.
	ShutdownHooks []func(context.Context) error

	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr net.Addr)
}

// Run serves cfg.Handler until ctx is canceled, then drains in-flight
// requests and runs the shutdown hooks. Callers pass a signal-aware context.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Handler == nil {
		return ErrNoHandler
	}
	if cfg.Address == "" {
		cfg.Address = defaultAddress
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           cfg.Handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return errors.Join(ErrListen, err)
	}
	if cfg.Ready != nil {
		cfg.Ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range cfg.ShutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	log.Info("shutdown completed")
	return nil
}
