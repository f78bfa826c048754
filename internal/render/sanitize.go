package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// policy is safe for concurrent use once built.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w-]+$`)).OnElements("code")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^(table-responsive|article-empty)$`)).OnElements("div", "p")
	return p
}

// Sanitize removes scripts, event handlers and other unsafe markup while
// keeping the formatting produced by the engines.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
