package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/blogtech/pkg/api"
)

// PrettyOptions controls terminal rendering.
type PrettyOptions struct {
	// Style is a glamour standard style name (dark, light, dracula, ...).
	Style string
	Width int
	// Date formats the article date; nil prints it verbatim.
	Date func(string) string
}

func (o PrettyOptions) renderer() (*glamour.TermRenderer, error) {
	style := o.Style
	if style == "" {
		style = "dracula"
	}
	width := o.Width
	if width <= 0 {
		width = 80
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
}

// ArticleMarkdown builds the Markdown shown for an article preview.
func ArticleMarkdown(a api.Article, date func(string) string) string {
	var meta []string
	meta = append(meta, fmt.Sprintf("**ID:** %d", a.ID))
	if a.Date != "" {
		d := a.Date
		if date != nil {
			d = date(a.Date)
		}
		meta = append(meta, "**Data:** "+d)
	}
	if a.Author != "" {
		meta = append(meta, "**Autor:** "+a.Author)
	}
	if a.ReadTime != "" {
		meta = append(meta, "**Leitura:** "+a.ReadTime)
	}

	var b strings.Builder
	title := a.Title
	if strings.TrimSpace(title) == "" {
		title = a.CleanSlug()
	}
	b.WriteString("# " + title + "\n\n")
	b.WriteString("> " + strings.Join(meta, " | ") + "\n")
	if len(a.Tags) > 0 {
		b.WriteString(">\n> **Tags:** " + strings.Join(a.Tags, ", ") + "\n")
	}
	if a.Status != api.StatusPublished {
		b.WriteString(">\n> _" + string(a.Status) + "_\n")
	}
	b.WriteString("\n---\n\n")
	b.WriteString(strings.TrimSpace(a.Content) + "\n")
	return b.String()
}

// WritePrettyArticle renders a single article with glamour.
func WritePrettyArticle(w io.Writer, a api.Article, opts PrettyOptions) error {
	r, err := opts.renderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(ArticleMarkdown(a, opts.Date))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// WritePrettyArticles renders a listing as a Markdown table with glamour.
func WritePrettyArticles(w io.Writer, list []api.Article, opts PrettyOptions) error {
	var b strings.Builder
	b.WriteString("| ID | Data | Título | Tags |\n|---:|---|---|---|\n")
	for _, a := range list {
		d := a.Date
		if opts.Date != nil && d != "" {
			d = opts.Date(d)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", a.ID, cell(d), cell(a.Title), cell(strings.Join(a.Tags, ", ")))
	}
	if len(list) == 0 {
		b.Reset()
		b.WriteString("_Nenhum artigo encontrado._\n")
	}
	r, err := opts.renderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(b.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
