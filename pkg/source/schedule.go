package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/lingo/pkg/locale"
)

// Invalidator is implemented by sources that cache, such as Cached.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Reloader reloads a source on a cron schedule.
type Reloader struct {
	cron    *cron.Cron
	entry   cron.EntryID
	src     Source
	apply   func(map[string]locale.Tree)
	logger  *slog.Logger
	timeout time.Duration
}

// ScheduleOption configures a Reloader.
type ScheduleOption func(*Reloader)

// WithScheduleLogger logs reloads and reload failures.
func WithScheduleLogger(l *slog.Logger) ScheduleOption {
	return func(r *Reloader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReloadTimeout bounds a single reload (default: 30s).
func WithReloadTimeout(d time.Duration) ScheduleOption {
	return func(r *Reloader) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// Schedule creates a Reloader that loads src on the cron expression expr and
// passes the trees to apply. Standard five-field expressions and descriptors
// such as "@every 5m" are accepted. Runs never overlap.
func Schedule(expr string, src Source, apply func(map[string]locale.Tree), opts ...ScheduleOption) (*Reloader, error) {
	r := &Reloader{
		src:     src,
		apply:   apply,
		logger:  slog.New(slog.DiscardHandler),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	r.cron = cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	id, err := r.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.Reload(ctx); err != nil {
			r.logger.ErrorContext(ctx, "scheduled translation reload failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: schedule %q: %w", ErrInvalidConfig, expr, err)
	}
	r.entry = id

	return r, nil
}

// Reload loads the source once and applies the result. Cached sources are
// invalidated first.
func (r *Reloader) Reload(ctx context.Context) error {
	if inv, ok := r.src.(Invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			return err
		}
	}

	trees, err := r.src.Load(ctx)
	if err != nil {
		return err
	}
	r.apply(trees)
	r.logger.InfoContext(ctx, "translations reloaded", slog.Int("languages", len(trees)))
	return nil
}

// Start runs the schedule in the background.
func (r *Reloader) Start() {
	r.cron.Start()
}

// Stop stops the schedule and waits for a running reload, or for ctx.
func (r *Reloader) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next reports when the next reload runs. It is zero until Start.
func (r *Reloader) Next() time.Time {
	return r.cron.Entry(r.entry).Next
}
