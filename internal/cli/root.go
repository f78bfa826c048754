package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/blogtech/internal/config"
	"github.com/mithrel/blogtech/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// rootFlagKeys maps flags to the config keys they override.
var rootFlagKeys = map[string]string{
	"articles":   "articles",
	"engine":     "render.engine",
	"trust-html": "render.trust_html",
	"log-level":  "log.level",
	"theme":      "theme.name",
	"output-dir": "build.output_dir",
	"data-dir":   "data_dir",
	"workers":    "build.workers",
}

// Execute is the entrypoint: it builds the root cobra.Command
// and calls its Execute() method to run the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "blogtech",
		Short:         "blogtech: static pages, sitemap and previews for the BlogTech blog",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipAppInit(cmd) {
				return nil
			}
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, rootFlagKeys)
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("invalid configuration:\n%w", err)
			}
			app, err := wire.BuildApp(cmd.Context(), v, wire.Options{LogOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), appKey, app)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app, ok := cmd.Context().Value(appKey).(*wire.App); ok {
				return app.Close()
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	pf.String("articles", "", "article list (JSON array or NDJSON)")
	pf.String("engine", "", "markdown engine: goldmark|basic")
	pf.Bool("trust-html", false, "pass raw HTML in articles through unsanitized")
	pf.String("log-level", "", "log level: debug|info|warn|error")
	pf.String("theme", "", "theme written to pages: light|dark|blue")
	pf.String("output-dir", "", "directory that receives article pages")
	pf.String("data-dir", "", "directory for local state")
	_ = cmd.RegisterFlagCompletionFunc("engine", fixedCompletion("goldmark", "basic"))
	_ = cmd.RegisterFlagCompletionFunc("theme", fixedCompletion("light", "dark", "blue"))
	_ = cmd.RegisterFlagCompletionFunc("log-level", fixedCompletion("debug", "info", "warn", "error"))

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newSitemapCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// skipAppInit reports whether cmd works without a loaded app.
func skipAppInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "config", "completion", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return cmd == cmd.Root()
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
