package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/pkg/api"
)

func newImportCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Append Markdown files with front matter to the article list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			path := app.ArticlesPath()

			existing, err := articles.Load(path)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load articles: %w", err)
			}
			if info, err := os.Stat(args[0]); err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a directory", args[0])
			}

			updated, res, err := articles.ImportDir(args[0], existing)
			if err != nil {
				return err
			}
			if !dryRun && len(res.Added) > 0 {
				if err := articles.Save(path, updated); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, a := range res.Added {
				_, _ = fmt.Fprintf(out, "+ %d %s\n", a.ID, a.Slug)
			}
			names := make([]string, 0, len(res.Skipped))
			for name := range res.Skipped {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", name, res.Skipped[name])
			}
			_, _ = fmt.Fprintf(out, "Imported: %d\nSkipped: %d\n", len(res.Added), len(res.Skipped))
			if dryRun {
				_, _ = fmt.Fprintf(out, "Dry run: %s not modified (next id %d)\n", path, api.NextID(updated))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be imported without writing")
	return cmd
}
