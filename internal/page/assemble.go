package page

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/mithrel/blogtech/internal/render"
	"github.com/mithrel/blogtech/pkg/api"
)

const (
	DefaultTitle  = "Artigo sem título"
	DefaultAuthor = "Autor desconhecido"
)

// Options controls the fixed chrome around every article.
type Options struct {
	SiteName    string
	Lang        string
	Locale      string
	DateLayout  string
	Stylesheets []string
	BackHref    string
	BackLabel   string
	// Theme is written to the data-theme attribute when non-empty.
	Theme string
	// Now supplies the footer year.
	Now func() time.Time
}

// DefaultOptions returns the chrome used by the blog.
func DefaultOptions() Options {
	return Options{
		SiteName:    "BlogTech",
		Lang:        "pt-BR",
		Locale:      DefaultLocale,
		DateLayout:  DefaultDateLayout,
		Stylesheets: []string{"../css/blog-base.css", "../css/article.css"},
		BackHref:    "../blog.html",
		BackLabel:   "Voltar ao Blog",
		Now:         time.Now,
	}
}

// Assembler builds standalone article documents. It performs no I/O and is
// safe for concurrent use.
type Assembler struct {
	opts Options
}

// New returns an Assembler; zero fields in opts take their defaults.
func New(opts Options) *Assembler {
	def := DefaultOptions()
	if opts.SiteName == "" {
		opts.SiteName = def.SiteName
	}
	if opts.Lang == "" {
		opts.Lang = def.Lang
	}
	if opts.Locale == "" {
		opts.Locale = def.Locale
	}
	if opts.DateLayout == "" {
		opts.DateLayout = def.DateLayout
	}
	if opts.Stylesheets == nil {
		opts.Stylesheets = def.Stylesheets
	}
	if opts.BackHref == "" {
		opts.BackHref = def.BackHref
	}
	if opts.BackLabel == "" {
		opts.BackLabel = def.BackLabel
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Assembler{opts: opts}
}

// Year returns the footer year the next Assemble call will print.
func (a *Assembler) Year() int { return a.opts.Now().Year() }

// Fingerprint is a digest of the chrome options, so cached pages can be
// invalidated when any of them change. The footer year is not included.
func (a *Assembler) Fingerprint() string {
	h := blake3.New()
	for _, s := range []string{a.opts.SiteName, a.opts.Lang, a.opts.Locale, a.opts.DateLayout, a.opts.BackHref, a.opts.BackLabel, a.opts.Theme} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	for _, s := range a.opts.Stylesheets {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HumanDate renders iso with the assembler's locale and layout.
func (a *Assembler) HumanDate(iso string) string {
	return FormatDate(iso, a.opts.DateLayout, a.opts.Locale)
}

// Assemble wraps the rendered body and article metadata into a complete HTML
// document.
func (a *Assembler) Assemble(article api.Article, bodyHTML, description string) string {
	esc := render.Escape
	title := esc(orDefault(article.Title, DefaultTitle))
	author := esc(orDefault(article.Author, DefaultAuthor))

	meta := make([]string, 0, 2)
	if iso := strings.TrimSpace(article.Date); iso != "" {
		meta = append(meta, `<time class="article-date" datetime="`+esc(iso)+`">`+esc(a.HumanDate(iso))+`</time>`)
	}
	meta = append(meta, `<span class="article-author">por `+author+`</span>`)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="` + esc(a.opts.Lang) + `"`)
	if a.opts.Theme != "" {
		b.WriteString(` data-theme="` + esc(a.opts.Theme) + `"`)
	}
	b.WriteString(">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\" />\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	b.WriteString("  <title>" + title + "</title>\n")
	b.WriteString(`  <meta name="description" content="` + esc(description) + "\" />\n")
	for _, href := range a.opts.Stylesheets {
		b.WriteString(`  <link rel="stylesheet" href="` + esc(href) + "\" />\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString("  <header class=\"site-header\">\n    <nav class=\"site-nav\">\n")
	b.WriteString(`      <a class="back-link" href="` + esc(a.opts.BackHref) + `">` + esc(a.opts.BackLabel) + "</a>\n")
	b.WriteString("    </nav>\n  </header>\n")
	b.WriteString("  <main class=\"article-main\">\n    <article class=\"article-content-wrapper\">\n")
	b.WriteString(`      <h1 class="article-title">` + title + "</h1>\n")
	b.WriteString(`      <div class="article-meta">` + strings.Join(meta, " • ") + "</div>\n")
	b.WriteString(`      <div class="article-content">` + bodyHTML + "</div>\n")
	if tags := tagList(article.Tags); tags != "" {
		b.WriteString("      " + tags + "\n")
	}
	if refs := referenceList(article.References); refs != "" {
		b.WriteString("      " + refs + "\n")
	}
	b.WriteString("    </article>\n  </main>\n")
	b.WriteString("  <footer class=\"site-footer\">\n")
	b.WriteString(`    <p class="footer-copy">&copy; ` + strconv.Itoa(a.Year()) + " " + esc(a.opts.SiteName) + ". Todos os direitos reservados.</p>\n")
	b.WriteString("  </footer>\n</body>\n</html>")
	return b.String()
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="article-tags">`)
	for _, t := range tags {
		b.WriteString(`<li class="article-tag">` + render.Escape(t) + "</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func referenceList(refs []string) string {
	if len(refs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<aside class="article-references"><h3>Referências</h3><ul>`)
	for _, u := range refs {
		u = render.Escape(u)
		b.WriteString(`<li><a href="` + u + `" target="_blank" rel="noopener noreferrer">` + u + "</a></li>")
	}
	b.WriteString("</ul></aside>")
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
