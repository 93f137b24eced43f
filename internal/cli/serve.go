package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lingo/internal/api"
	"github.com/dmitrymomot/lingo/internal/server"
	"github.com/dmitrymomot/lingo/pkg/cache"
	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/locale"
	"github.com/dmitrymomot/lingo/pkg/source"
)

const treesCacheKey = "trees"

func newServeCommand(a *app) *cobra.Command {
	var (
		addr       string
		watch      bool
		reloadCron string
		cacheTTL   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve merged locale trees over HTTP",
		Long: `Serve exposes the merged trees of every language:

  GET /v/{lang}            the whole merged tree
  GET /v/{lang}/{path}     one node, e.g. /v/de/common/menu/0
  GET /t/{ns}/{key}?n=3    a translated string
  GET /langs               served languages
  GET /healthz, /readyz    probes

--watch reloads the fs source when files change; --reload-cron reloads any
source on a cron schedule such as "@every 5m".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if watch && a.v.GetString(keySource) != sourceFS {
				return ErrWatchNeedsDir
			}

			b, err := a.openBackend(ctx)
			if err != nil {
				return err
			}

			src := b.src
			if cacheTTL > 0 {
				src = source.NewCached(src, a.treeCache(b), treesCacheKey, cacheTTL)
			}

			svc, err := a.newService(ctx, src)
			if err != nil {
				_ = b.Close(ctx)
				return err
			}
			h := api.New(svc, api.WithChecks(b.checks), api.WithLogger(a.log))

			apply := func(trees map[string]locale.Tree) {
				next, err := i18n.New(
					i18n.WithDefaultLanguage(a.v.GetString(keyDefaultLang)),
					i18n.WithContent(trees),
					i18n.WithLogger(a.log),
				)
				if err != nil {
					a.log.Error("rebuilding translations", slog.Any("error", err))
					return
				}
				h.Swap(next)
				a.log.Info("translations reloaded", slog.Int("languages", len(next.Languages())))
			}

			hooks := []func(context.Context) error{}
			if reloadCron != "" {
				r, err := source.Schedule(reloadCron, src, apply, source.WithScheduleLogger(a.log))
				if err != nil {
					_ = b.Close(ctx)
					return err
				}
				r.Start()
				hooks = append(hooks, r.Stop)
			}
			hooks = append(hooks, b.Close)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.Run(ctx, server.Config{
					Handler:       h,
					Address:       addr,
					Logger:        a.log,
					ShutdownHooks: hooks,
					Ready: func(bound net.Addr) {
						fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", bound)
					},
				})
			})
			if watch {
				g.Go(func() error {
					return source.Watch(ctx, a.v.GetString(keyDir), apply, source.WithWatchLogger(a.log))
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the locale directory when it changes")
	cmd.Flags().StringVar(&reloadCron, "reload-cron", "", "reload the source on this cron schedule")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "cache loaded trees for this long (Redis when --redis-url is set)")

	return cmd
}

func (a *app) newService(ctx context.Context, src source.Source) (*i18n.I18n, error) {
	return i18n.New(
		i18n.WithDefaultLanguage(a.v.GetString(keyDefaultLang)),
		i18n.WithSource(ctx, src),
		i18n.WithLogger(a.log),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			a.log.Debug("missing translation",
				slog.String("lang", lang),
				slog.String("namespace", namespace),
				slog.String("key", key),
			)
		}),
	)
}

// treeCache keeps loaded trees in Redis when the backend has a client and in
// process memory otherwise.
func (a *app) treeCache(b *backend) cache.Cache[map[string]locale.Tree] {
	if b.client != nil {
		return cache.NewRedis(b.client, source.TreeMarshaler{}, cache.WithPrefix("lingo:trees"))
	}
	return cache.NewMemory[map[string]locale.Tree](cache.WithMaxEntries(1))
}
