package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/lingo/pkg/locale"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

type watchConfig struct {
	debounce time.Duration
	logger   *slog.Logger
	fsOpts   []FSOption
}

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

// WithDebounce sets how long Watch waits for events to settle before reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithWatchLogger logs reloads and reload failures.
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWatchFSOptions configures the FS source Watch reloads with.
func WithWatchFSOptions(opts ...FSOption) WatchOption {
	return func(c *watchConfig) {
		c.fsOpts = append(c.fsOpts, opts...)
	}
}

// Watch reloads the translation files under dir whenever they change and
// passes the new trees to apply, typically Localizer.SetContent. A reload
// that fails is logged and the previous content stays in place.
//
// Watch blocks until ctx is done and returns nil then.
func Watch(ctx context.Context, dir string, apply func(map[string]locale.Tree), opts ...WatchOption) error {
	cfg := &watchConfig{
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: starting watcher: %w", ErrLoadFailed, err)
	}
	defer w.Close()

	if err := addRecursive(w, dir); err != nil {
		return err
	}

	src := Dir(dir, cfg.fsOpts...)
	log := cfg.logger.With(slog.String("dir", dir))

	timer := time.NewTimer(cfg.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				// New language directories need their own watch.
				_ = addRecursive(w, ev.Name)
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			timer.Reset(cfg.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "translation watcher error", slog.Any("error", err))

		case <-timer.C:
			trees, err := src.Load(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				log.ErrorContext(ctx, "translation reload failed", slog.Any("error", err))
				continue
			}
			log.InfoContext(ctx, "translations reloaded", slog.Int("languages", len(trees)))
			apply(trees)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: watching %q: %w", ErrLoadFailed, p, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("%w: watching %q: %w", ErrLoadFailed, p, err)
		}
		return nil
	})
}
