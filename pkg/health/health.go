package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// ErrCheckTimeout is reported for a check that outlives the timeout.
var ErrCheckTimeout = errors.New("health: check timeout")

// CheckFunc is the standard health check function signature.
// db.Healthcheck, redis.Healthcheck and source.Healthcheck all return one.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named health check functions.
type Checks map[string]CheckFunc

// Response represents a health check response.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check represents the status of a single health check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// config holds health check configuration.
type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures health check behavior.
type Option func(*config)

// WithTimeout sets the timeout for all checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for error logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// newConfig creates a config with defaults, modified by options.
func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// runChecks executes all checks concurrently and returns the aggregated result.
func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	names := slices.Sorted(maps.Keys(checks))
	results := make([]Check, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			results[i] = runCheck(ctx, name, checks[name], cfg.logger)
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{Status: StatusHealthy, Checks: make(map[string]Check, len(names))}
	for i, name := range names {
		resp.Checks[name] = results[i]
		if results[i].Status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
		}
	}
	return resp
}

func runCheck(ctx context.Context, name string, check CheckFunc, log *slog.Logger) Check {
	err := check(ctx)
	if err == nil && ctx.Err() != nil {
		err = ErrCheckTimeout
	}
	if err == nil {
		return Check{Status: StatusHealthy}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(ErrCheckTimeout, err)
	}
	log.WarnContext(ctx, "health check failed",
		slog.String("check", name),
		slog.String("error", err.Error()),
	)
	return Check{Status: StatusUnhealthy, Error: err.Error()}
}
