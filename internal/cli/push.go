package cli

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lingo/pkg/source"
)

func newPushCommand(a *app) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Copy a locale directory into the configured store",
		Long: `Push reads every {lang}/{namespace} file under --from (default --dir) and
writes it to the store selected by --source. Fenced values and rich text are
stored with their markers, so they load back unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if from == "" {
				from = a.v.GetString(keyDir)
			}

			trees, err := source.Dir(from).Load(ctx)
			if err != nil {
				return err
			}

			b, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			count := 0
			switch {
			case b.pool != nil:
				if err := source.Sync(ctx, b.pool, trees, a.postgresOptions()...); err != nil {
					return err
				}
				for _, tree := range trees {
					count += len(tree)
				}
			default:
				w, ok := b.src.(writer)
				if !ok {
					return fmt.Errorf("%w: %s", ErrNotWritable, b.kind)
				}
				for _, lang := range slices.Sorted(maps.Keys(trees)) {
					tree := trees[lang]
					for _, ns := range slices.Sorted(maps.Keys(tree)) {
						content, ok := tree[ns].(map[string]any)
						if !ok {
							return fmt.Errorf("%w: %s/%s is %T", source.ErrInvalidFile, lang, ns, tree[ns])
						}
						if err := w.Put(ctx, lang, ns, content); err != nil {
							return fmt.Errorf("pushing %s/%s: %w", lang, ns, err)
						}
						count++
					}
				}
			}

			a.log.Info("pushed locale trees",
				slog.String("source", b.kind),
				slog.Int("languages", len(trees)),
				slog.Int("namespaces", count),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pushed %d namespaces in %d languages\n", count, len(trees))
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "locale directory to push (default --dir)")
	return cmd
}
