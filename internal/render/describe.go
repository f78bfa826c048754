package render

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DescriptionLimit is the maximum description length in characters,
// not counting the trailing ellipsis.
const DescriptionLimit = 150

// minCutIndex is the smallest space position accepted as a word boundary.
const minCutIndex = 80

const ellipsis = "…"

var (
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// PlainText strips script/style elements and all tags from html and
// collapses whitespace.
func PlainText(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Describe derives a short plain-text description from rendered html.
// Long text is cut at the last word boundary past minCutIndex, or hard cut at
// DescriptionLimit, and suffixed with an ellipsis.
func Describe(html string) string {
	text := PlainText(html)
	if utf8.RuneCountInString(text) <= DescriptionLimit {
		return text
	}

	runes := []rune(text)
	slice := strings.TrimSpace(string(runes[:DescriptionLimit]))
	candidate := slice
	if i := lastSpaceRuneIndex(slice); i > minCutIndex {
		candidate = string([]rune(slice)[:i])
	}
	return strings.TrimSpace(candidate) + ellipsis
}

// lastSpaceRuneIndex returns the rune index of the last ' ' in s, or -1.
func lastSpaceRuneIndex(s string) int {
	idx := strings.LastIndexByte(s, ' ')
	if idx < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:idx])
}
