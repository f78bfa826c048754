package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"all specials in order", `&<>"'`, "&amp;&lt;&gt;&quot;&#39;"},
		{"reverse order", `'"><&`, "&#39;&quot;&gt;&lt;&amp;"},
		{"repeated", "&&", "&amp;&amp;"},
		{"plain text untouched", "hello world", "hello world"},
		{"mixed", `a <b> & "c"`, "a &lt;b&gt; &amp; &quot;c&quot;"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestEscapeSpecialsOnly(t *testing.T) {
	entity := map[rune]string{'&': "&amp;", '<': "&lt;", '>': "&gt;", '"': "&quot;", '\'': "&#39;"}
	inputs := []string{`&`, `<<>>`, `"'&'"`, `&lt;`, `><&"'&`}
	for _, in := range inputs {
		var want strings.Builder
		for _, r := range in {
			if e, ok := entity[r]; ok {
				want.WriteString(e)
			} else {
				want.WriteRune(r)
			}
		}
		assert.Equal(t, want.String(), Escape(in), "input %q", in)
	}
}
