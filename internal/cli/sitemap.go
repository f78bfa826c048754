package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/internal/sitemap"
)

func newSitemapCmd() *cobra.Command {
	var out string
	var stdout bool
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml for the published articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			list, err := articles.Load(app.ArticlesPath())
			if err != nil {
				return fmt.Errorf("load articles: %w", err)
			}
			set, err := sitemap.Build(list, sitemap.Options{
				BaseURL:  app.Cfg.GetString("sitemap.base_url"),
				LinkMode: app.Cfg.GetString("sitemap.link_mode"),
			})
			if err != nil {
				return err
			}
			if stdout {
				return sitemap.Write(cmd.OutOrStdout(), set)
			}

			if out == "" {
				out = app.Cfg.GetString("sitemap.output")
			}
			var buf bytes.Buffer
			if err := sitemap.Write(&buf, set); err != nil {
				return err
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			app.Log.SitemapWritten(out, len(set.URLs))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d urls)\n", out, len(set.URLs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (default from sitemap.output)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the sitemap to stdout")
	return cmd
}
