package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/lingo/internal/api"
	"github.com/dmitrymomot/lingo/pkg/locale"
)

type resolveOutput struct {
	Language string       `yaml:"language"`
	Resolved string       `yaml:"resolved"`
	Fallback bool         `yaml:"fallback,omitempty"`
	Path     string       `yaml:"path,omitempty"`
	Value    any          `yaml:"value"`
	Trace    []traceEntry `yaml:"trace,omitempty"`
}

type traceEntry struct {
	Path   string `yaml:"path"`
	Origin string `yaml:"origin"`
	Kind   string `yaml:"kind"`
}

func newResolveCommand(a *app) *cobra.Command {
	var (
		lang     string
		path     string
		trace    bool
		pseudo   bool
		expanded bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the merged locale tree of a language",
		Long: `Resolve merges the language's tree over the default language and prints
the result as YAML. With --path only the node at that path is printed;
paths look like "common.menu[0].title".`,
		Args: cobra.NoArgs,
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

			defaultLang := a.v.GetString(keyDefaultLang)
			if lang == "" {
				lang = defaultLang
			}
			l := locale.New(trees,
				locale.WithDefaultLanguage(defaultLang),
				locale.WithLanguage(lang),
				locale.WithTrace(trace),
				locale.WithPseudo(pseudo),
				locale.WithPseudoMultipleLanguages(expanded),
				locale.WithLogger(a.log),
			)
			view := l.View()

			out := resolveOutput{
				Language: view.Language(),
				Resolved: view.Resolved(),
				Fallback: view.Fallback(),
			}

			if path != "" {
				v, ok := view.Get(path)
				if !ok {
					return fmt.Errorf("%w: %s", ErrPathNotFound, path)
				}
				out.Path = path
				out.Value = api.Present(v)
			} else {
				out.Value = api.Present(view.Root())
			}

			if trace {
				for _, e := range view.Trace().Entries() {
					out.Trace = append(out.Trace, traceEntry{
						Path:   e.Path,
						Origin: e.Origin.String(),
						Kind:   e.Kind.String(),
					})
				}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encoding output: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "language to resolve (default: the default language)")
	cmd.Flags().StringVar(&path, "path", "", "print only the node at this path")
	cmd.Flags().BoolVar(&trace, "trace", false, "list where every leaf came from")
	cmd.Flags().BoolVar(&pseudo, "pseudo", false, "pseudo-localize strings")
	cmd.Flags().BoolVar(&expanded, "pseudo-expanded", false, "pseudo-localize and pad strings by 40%")

	return cmd
}
