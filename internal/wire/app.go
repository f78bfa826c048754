package wire

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/mithrel/blogtech/internal/config"
	"github.com/mithrel/blogtech/internal/db"
	"github.com/mithrel/blogtech/internal/logger"
	"github.com/mithrel/blogtech/internal/page"
	"github.com/mithrel/blogtech/internal/render"
	"github.com/mithrel/blogtech/internal/site"
	"github.com/mithrel/blogtech/internal/theme"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg       *viper.Viper
	Log       *logger.Logger
	Renderer  *render.Renderer
	Assembler *page.Assembler
	Builder   *site.Builder
	Theme     string

	store *db.Store
}

// Options lets callers replace process-wide defaults, mostly in tests.
type Options struct {
	LogOutput io.Writer
	// SystemDark overrides terminal background detection when non-nil.
	SystemDark *bool
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper, opts Options) (*App, error) {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	lvl, err := logger.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, err
	}
	log := logger.NewWithLevel(out, lvl)
	log.ConfigLoaded(v.ConfigFileUsed(), v.GetString("articles"))

	renderer, err := render.New(render.Options{
		Engine:    v.GetString("render.engine"),
		TrustHTML: v.GetBool("render.trust_html"),
	})
	if err != nil {
		return nil, err
	}

	pref := theme.Preference{Stored: v.GetString("theme.name")}
	if opts.SystemDark != nil {
		pref.SystemDark = *opts.SystemDark
	} else {
		pref.SystemDark = lipgloss.HasDarkBackground()
	}
	themeName := pref.Resolve()

	assembler := page.New(page.Options{
		SiteName:    v.GetString("site.name"),
		Lang:        v.GetString("site.lang"),
		Locale:      v.GetString("site.locale"),
		DateLayout:  v.GetString("site.date_layout"),
		Stylesheets: v.GetStringSlice("site.stylesheets"),
		BackHref:    v.GetString("site.back_href"),
		BackLabel:   v.GetString("site.back_label"),
		// Only an explicit theme is pinned in the page; otherwise the
		// browser-side preload decides.
		Theme: v.GetString("theme.name"),
	})

	var store *db.Store
	if v.GetBool("build.incremental") {
		store, err = db.Open(ctx, "sqlite://"+config.ResolveManifestPath(v))
		if err != nil {
			return nil, err
		}
	}
	var manifest db.Manifest
	if store != nil {
		manifest = store.Manifest
	}

	builder := site.New(renderer, assembler, manifest, log, site.Options{
		OutputDir:     v.GetString("build.output_dir"),
		Workers:       v.GetInt("build.workers"),
		FailFast:      v.GetBool("build.fail_fast"),
		IncludeDrafts: v.GetBool("build.include_drafts"),
		Incremental:   v.GetBool("build.incremental"),
	})

	return &App{
		Cfg:       v,
		Log:       log,
		Renderer:  renderer,
		Assembler: assembler,
		Builder:   builder,
		Theme:     themeName,
		store:     store,
	}, nil
}

// ArticlesPath resolves the configured article list path.
func (a *App) ArticlesPath() string {
	p := a.Cfg.GetString("articles")
	if len(p) > 1 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

// Close releases resources held by the app.
func (a *App) Close() error {
	return a.store.Close()
}
