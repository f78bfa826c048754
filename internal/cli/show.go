package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/internal/present"
	"github.com/mithrel/blogtech/internal/theme"
)

func newShowCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:   "show <id|slug>",
		Short: "Show one article in the terminal or as its generated HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			list, err := articles.Load(app.ArticlesPath())
			if err != nil {
				return fmt.Errorf("load articles: %w", err)
			}
			a, found := articles.Find(list, strings.TrimSpace(args[0]))
			if !found {
				return fmt.Errorf("article %q not found", args[0])
			}

			if mode == present.ModeHTML {
				frag := app.Renderer.Render(a.Content)
				_, err := io.WriteString(cmd.OutOrStdout(), app.Assembler.Assemble(a, frag.HTML, frag.Description)+"\n")
				return err
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: true,
				Headers:    true,
				Style:      theme.GlamourStyle(app.Theme),
				Theme:      app.Theme,
				Date:       app.Assembler.HumanDate,
			}
			return renderArticle(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), a, opts)
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "pretty", "output mode: pretty|html|json|plain")
	_ = cmd.RegisterFlagCompletionFunc("output", fixedCompletion("pretty", "html", "json", "plain"))
	return cmd
}
