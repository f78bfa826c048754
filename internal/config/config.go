package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence; these
	// paths are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("blogtech")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "blogtech"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "blogtech"))
		}
	}

	applyDefaults(v)

	// A missing file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: BLOGTECH_*
	v.SetEnvPrefix("blogtech")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}

	// Allow comma-separated env override for site.stylesheets
	if s := strings.TrimSpace(os.Getenv("BLOGTECH_SITE_STYLESHEETS")); s != "" {
		v.Set("site.stylesheets", splitList(s))
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/blogtech or ~/.local/share/blogtech
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "blogtech")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "blogtech")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "blogtech", "blogtech.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; build manifest is data_dir/manifest.db"},
		{Key: "articles", Default: "articles.json", Comment: "Article list (JSON array or NDJSON)"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug|info|warn|error"},

		{Key: "render.engine", Default: "goldmark", Comment: "Markdown engine: goldmark|basic"},
		{Key: "render.trust_html", Default: false, Comment: "Pass raw HTML in articles through unsanitized"},

		{Key: "build.output_dir", Default: "posts", Comment: "Directory that receives <slug>.html pages"},
		{Key: "build.workers", Default: 4, Comment: "Articles rendered in parallel"},
		{Key: "build.fail_fast", Default: false, Comment: "Abort the build on the first failing article"},
		{Key: "build.include_drafts", Default: false, Comment: "Also build articles whose status is not published"},
		{Key: "build.incremental", Default: true, Comment: "Skip articles whose content and output are unchanged"},

		{Key: "site.name", Default: "BlogTech", Comment: "Site name shown in the footer"},
		{Key: "site.lang", Default: "pt-BR", Comment: "Document language attribute"},
		{Key: "site.locale", Default: "pt_BR", Comment: "Locale for month names in article dates"},
		{Key: "site.date_layout", Default: "02 de January de 2006", Comment: "Go time layout for article dates"},
		{Key: "site.stylesheets", Default: []string{"../css/blog-base.css", "../css/article.css"}, Comment: "Stylesheets linked from every article page"},
		{Key: "site.back_href", Default: "../blog.html", Comment: "Target of the back link"},
		{Key: "site.back_label", Default: "Voltar ao Blog", Comment: "Text of the back link"},

		{Key: "sitemap.base_url", Default: "https://ismaelly1984.github.io/blogtech", Comment: "Public base URL of the site"},
		{Key: "sitemap.output", Default: "sitemap.xml", Comment: "Sitemap output path"},
		{Key: "sitemap.link_mode", Default: "query", Comment: "Article links: query (blog-post.html?id=N) or static (posts/<slug>.html)"},

		{Key: "listing.per_page", Default: 6, Comment: "Articles per page in list output"},

		{Key: "theme.name", Default: "", Comment: "Theme written to data-theme: light|dark|blue; empty follows the terminal background"},
	}
}

// ResolveManifestPath returns the sqlite manifest path under data_dir.
func ResolveManifestPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "manifest.db")
}
