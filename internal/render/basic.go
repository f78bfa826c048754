package render

import (
	"regexp"
	"strconv"
	"strings"
)

// BasicEngine is the built-in Markdown converter. It understands fenced code
// blocks, ATX headings, paragraphs and a handful of inline spans.
type BasicEngine struct {
	trustHTML bool
}

// NewBasicEngine returns the built-in engine.
func NewBasicEngine(trustHTML bool) *BasicEngine {
	return &BasicEngine{trustHTML: trustHTML}
}

func (e *BasicEngine) Name() string { return EngineBasic }

// Convert renders content. Content that already looks like HTML is returned
// as is when trusted, sanitized otherwise.
func (e *BasicEngine) Convert(content string) (string, error) {
	if LooksLikeHTML(content) {
		if e.trustHTML {
			return content, nil
		}
		return Sanitize(content), nil
	}
	return BasicMarkdown(content), nil
}

var (
	blockSplitRe = regexp.MustCompile(`\n{2,}`)
	fenceLangRe  = regexp.MustCompile("^```(\\w+)?")
	fenceOpenRe  = regexp.MustCompile("^```\\w*\\n?")
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

	strongStarRe  = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strongUnderRe = regexp.MustCompile(`__(.+?)__`)
	emStarRe      = regexp.MustCompile(`\*(.+?)\*`)
	emUnderRe     = regexp.MustCompile(`_(.+?)_`)
	codeSpanRe    = regexp.MustCompile("`([^`]+)`")
)

// BasicMarkdown converts markdown to HTML block by block.
func BasicMarkdown(markdown string) string {
	normalized := strings.ReplaceAll(markdown, "\r\n", "\n")
	blocks := blockSplitRe.Split(normalized, -1)

	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if html := renderBlock(block); html != "" {
			out = append(out, html)
		}
	}
	return strings.Join(out, "\n")
}

func renderBlock(block string) string {
	trimmed := strings.TrimSpace(block)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		class := ""
		if m := fenceLangRe.FindStringSubmatch(trimmed); m != nil && m[1] != "" {
			class = ` class="language-` + Escape(m[1]) + `"`
		}
		code := fenceOpenRe.ReplaceAllString(trimmed, "")
		code = strings.TrimSuffix(code, "```")
		return "<pre><code" + class + ">" + Escape(code) + "</code></pre>"
	}

	if m := headingRe.FindStringSubmatch(trimmed); m != nil {
		level := strconv.Itoa(len(m[1]))
		return "<h" + level + ">" + Inline(Escape(m[2])) + "</h" + level + ">"
	}

	return "<p>" + Inline(Escape(trimmed)) + "</p>"
}

// Inline applies bold, italic and code span substitutions, in that order.
func Inline(text string) string {
	text = strongStarRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = strongUnderRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = emStarRe.ReplaceAllString(text, "<em>$1</em>")
	text = emUnderRe.ReplaceAllString(text, "<em>$1</em>")
	text = codeSpanRe.ReplaceAllString(text, "<code>$1</code>")
	return text
}
