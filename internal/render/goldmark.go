package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// GoldmarkEngine renders CommonMark plus GFM extensions with goldmark.
// A goldmark.Markdown is safe for concurrent use, so one instance is shared.
type GoldmarkEngine struct {
	md        goldmark.Markdown
	trustHTML bool
}

// NewGoldmarkEngine builds the full-featured engine. Raw HTML inside the
// markdown is emitted only when trustHTML is set.
func NewGoldmarkEngine(trustHTML bool) *GoldmarkEngine {
	rendererOptions := []goldmark.Option{}
	if trustHTML {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	opts := append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	}, rendererOptions...)

	return &GoldmarkEngine{md: goldmark.New(opts...), trustHTML: trustHTML}
}

func (e *GoldmarkEngine) Name() string { return EngineGoldmark }

func (e *GoldmarkEngine) Convert(content string) (string, error) {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	out := wrapTables(buf.String())
	if !e.trustHTML {
		out = Sanitize(out)
	}
	return out, nil
}

// wrapTables puts every table inside a horizontally scrollable container.
func wrapTables(s string) string {
	if !strings.Contains(s, "<table>") {
		return s
	}
	s = strings.ReplaceAll(s, "<table>", `<div class="table-responsive"><table>`)
	return strings.ReplaceAll(s, "</table>", "</table></div>")
}
