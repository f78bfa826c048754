package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/blogtech/internal/logger"
	"github.com/mithrel/blogtech/internal/page"
	"github.com/mithrel/blogtech/internal/render"
	"github.com/mithrel/blogtech/internal/sitemap"
	"github.com/mithrel/blogtech/internal/theme"
)

// CheckConfigValidity reports every problem in v at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		add("data_dir is required")
	}
	if strings.TrimSpace(v.GetString("articles")) == "" {
		add("articles is required")
	}
	if _, err := logger.ParseLevel(v.GetString("log.level")); err != nil {
		add("log.level: %v", err)
	}
	if _, err := render.NewEngine(v.GetString("render.engine"), false); err != nil {
		add("render.engine: %v", err)
	}
	if strings.TrimSpace(v.GetString("build.output_dir")) == "" {
		add("build.output_dir is required")
	}
	if v.GetInt("build.workers") <= 0 {
		add("build.workers must be greater than 0")
	}
	if v.GetInt("listing.per_page") <= 0 {
		add("listing.per_page must be greater than 0")
	}
	if loc := v.GetString("site.locale"); !page.KnownLocale(loc) {
		add("site.locale %q is not supported", loc)
	}
	if strings.TrimSpace(v.GetString("site.date_layout")) == "" {
		add("site.date_layout is required")
	}
	if base := v.GetString("sitemap.base_url"); base != "" {
		if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
			add("sitemap.base_url %q is not an absolute url", base)
		}
	}
	if mode := v.GetString("sitemap.link_mode"); !sitemap.ValidLinkMode(mode) {
		add("sitemap.link_mode must be query or static, got %q", mode)
	}
	if name := v.GetString("theme.name"); name != "" && !theme.Valid(name) {
		add("theme.name %q is not one of %s", name, strings.Join(theme.Known, ", "))
	}
	return errors.Join(errs...)
}
