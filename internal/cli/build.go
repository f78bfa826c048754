package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/internal/site"
)

func newBuildCmd() *cobra.Command {
	var force, failFast, includeDrafts bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every article into a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			list, err := articles.Load(app.ArticlesPath())
			if err != nil {
				return fmt.Errorf("load articles: %w", err)
			}

			b := app.Builder
			if cmd.Flags().Changed("force") {
				b = b.WithForce(force)
			}
			if cmd.Flags().Changed("fail-fast") {
				b = b.WithFailFast(failFast)
			}
			if cmd.Flags().Changed("include-drafts") {
				b = b.WithDrafts(includeDrafts)
			}

			res, err := b.Build(cmd.Context(), list)
			writeBuildSummary(cmd.OutOrStdout(), b.OutputDir(), res)
			if err != nil {
				return err
			}
			if n := res.Failed(); n > 0 {
				return fmt.Errorf("%d article(s) failed:\n%w", n, res.Err())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "rebuild articles even when unchanged")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failing article")
	cmd.Flags().BoolVar(&includeDrafts, "include-drafts", false, "also build unpublished articles")
	// Read through rootFlagKeys when the app is wired.
	cmd.Flags().IntP("workers", "j", 0, "number of articles rendered concurrently")
	return cmd
}

func writeBuildSummary(w io.Writer, outDir string, res site.Result) {
	_, _ = fmt.Fprintf(w, "Built: %d\nSkipped: %d\nFailed: %d\nOutput: %s\n",
		res.Built(), res.Skipped(), res.Failed(), outDir)
}
