package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/internal/config"
	"github.com/mithrel/blogtech/internal/listing"
	"github.com/mithrel/blogtech/internal/present"
	"github.com/mithrel/blogtech/internal/theme"
	"github.com/mithrel/blogtech/internal/util"
)

func newListCmd() *cobra.Command {
	var (
		search, tag  string
		since, until string
		page         int
		perPage      int
		outputMode   string
		noHeaders    bool
		all          bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published articles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeHTML {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			rng, err := util.NormalizeTimeRange(since, until, time.Now())
			if err != nil {
				return err
			}
			list, err := articles.Load(app.ArticlesPath())
			if err != nil {
				return fmt.Errorf("load articles: %w", err)
			}

			if all {
				listing.SortByDate(list)
			} else {
				list = listing.Published(list)
			}
			if perPage <= 0 {
				perPage = app.Cfg.GetInt("listing.per_page")
			}

			opts := present.Options{
				Mode:    mode,
				Headers: !noHeaders,
				Style:   theme.GlamourStyle(app.Theme),
				Theme:   app.Theme,
				PerPage: perPage,
				Page:    page,
				Term:    search,
				Date:    app.Assembler.HumanDate,
			}
			if mode == present.ModeTUI {
				// the browser filters by search term itself
				list = listing.Filter(list, listing.Query{Tag: tag, Range: rng})
				return present.RenderArticles(cmd.Context(), cmd.OutOrStdout(), list, opts)
			}

			list = listing.Filter(list, listing.Query{Term: search, Tag: tag, Range: rng})
			if page > 0 {
				list = listing.Paginate(list, page, perPage).Items
			}
			return renderArticles(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), list, opts)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match title or tags (case-insensitive)")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only articles carrying this tag")
	cmd.Flags().StringVar(&since, "since", "", "only articles dated after: 2w, 3mo, 48h or 2024-03-05")
	cmd.Flags().StringVar(&until, "until", "", "only articles dated before: 2w, 3mo, 48h or 2024-03-05")
	cmd.Flags().IntVarP(&page, "page", "p", 0, "page number (0 lists everything)")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "articles per page (0 uses config)")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|pretty|json|ndjson|tui")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain/tui)")
	cmd.Flags().BoolVar(&all, "all", false, "include drafts")
	_ = cmd.RegisterFlagCompletionFunc("output", fixedCompletion("plain", "pretty", "json", "ndjson", "tui"))
	_ = cmd.RegisterFlagCompletionFunc("tag", completeTags)
	return cmd
}

// completeTags ranks known tags against the typed prefix. It loads config
// itself because completion runs without the app.
func completeTags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	v := viper.New()
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		v.SetConfigFile(p)
	}
	if err := config.Load(cmd.Context(), v); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	applyConfigFlagOverrides(cmd, v, rootFlagKeys)
	list, err := articles.Load(v.GetString("articles"))
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return util.ScoreCompletions(toComplete, listing.Tags(list), 20), cobra.ShellCompDirectiveNoFileComp
}
