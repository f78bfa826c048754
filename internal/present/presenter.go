package present

import (
	"context"
	"errors"
	"io"

	"github.com/mithrel/blogtech/internal/present/format"
	"github.com/mithrel/blogtech/internal/present/tui"
	"github.com/mithrel/blogtech/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeTUI
	ModeHTML
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// Style is the glamour style for pretty output.
	Style string
	// Theme is the theme name the tui starts with.
	Theme   string
	Width   int
	PerPage int
	Page    int
	Term    string
	Date    func(string) string
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "tui", "html".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	case "html":
		return ModeHTML, true
	default:
		return ModePlain, false
	}
}

func (o Options) pretty() format.PrettyOptions {
	return format.PrettyOptions{Style: o.Style, Width: o.Width, Date: o.Date}
}

// RenderArticles renders a listing according to options.
func RenderArticles(ctx context.Context, w io.Writer, list []api.Article, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONArticles(w, list, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONArticles(w, list)
	case ModePretty:
		return format.WritePrettyArticles(w, list, opts.pretty())
	case ModeTUI:
		return tui.RenderTable(ctx, list, tui.Options{
			Headers: opts.Headers,
			PerPage: opts.PerPage,
			Page:    opts.Page,
			Term:    opts.Term,
			Theme:   opts.Theme,
			Date:    opts.Date,
		})
	case ModeHTML:
		return errors.New("html output is only available for a single article")
	default:
		return format.WritePlainArticles(w, list, opts.Headers)
	}
}

// RenderArticle renders a single article according to options. ModeHTML is
// handled by the caller, which owns the renderer and assembler.
func RenderArticle(ctx context.Context, w io.Writer, a api.Article, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONArticle(w, a, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteJSONArticle(w, a, false)
	case ModePlain:
		return format.WritePlainArticle(w, a, opts.Headers)
	case ModePretty:
		return format.WritePrettyArticle(w, a, opts.pretty())
	case ModeTUI:
		return tui.RenderTable(ctx, []api.Article{a}, tui.Options{Headers: opts.Headers, Theme: opts.Theme, Date: opts.Date})
	default:
		return errors.New("unsupported output mode for a single article")
	}
}
