package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lingo/pkg/db"
	"github.com/dmitrymomot/lingo/pkg/source"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the PostgreSQL locale table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := a.openPostgres(ctx)
			if err != nil {
				return err
			}
			defer db.Shutdown(pool)(ctx)

			if err := source.Migrate(ctx, pool, a.log); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}
}
