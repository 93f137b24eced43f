package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func newLangsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the languages of the source, default first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			trees, err := b.src.Load(ctx)
			if err != nil {
				return err
			}
			svc, err := i18n.New(
				i18n.WithDefaultLanguage(a.v.GetString(keyDefaultLang)),
				i18n.WithContent(trees),
			)
			if err != nil {
				return err
			}

			for _, lang := range svc.Languages() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
