package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML-significant characters with entities.
// The replacement is a single pass, so already produced entities are never
// escaped a second time within one call.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}
