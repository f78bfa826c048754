package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeShortText(t *testing.T) {
	html := "<h1>Hello</h1>\n<p>Some   <strong>bold</strong>\n text</p>"
	assert.Equal(t, "Hello Some bold text", Describe(html))
}

func TestDescribeStripsScriptAndStyle(t *testing.T) {
	html := "<p>Visible</p><SCRIPT type=\"text/javascript\">\nalert('x')\n</SCRIPT><style>\np { color: red }\n</style><p>text</p>"
	assert.Equal(t, "Visible text", Describe(html))
}

func TestDescribeExactlyAtLimit(t *testing.T) {
	text := strings.Repeat("a", DescriptionLimit)
	assert.Equal(t, text, Describe("<p>"+text+"</p>"))
}

func TestDescribeCutsAtWordBoundary(t *testing.T) {
	word := "palavra "
	text := strings.Repeat(word, 30) // 240 chars
	got := Describe("<p>" + text + "</p>")

	require.True(t, strings.HasSuffix(got, "…"))
	body := strings.TrimSuffix(got, "…")
	assert.False(t, strings.HasSuffix(body, " "))
	assert.True(t, strings.HasSuffix(body, "palavra"))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), DescriptionLimit+1)
	assert.Greater(t, utf8.RuneCountInString(body), minCutIndex)
}

func TestDescribeHardCutWithoutLateSpace(t *testing.T) {
	text := "short " + strings.Repeat("x", 200)
	got := Describe(text)
	assert.Equal(t, "short "+strings.Repeat("x", DescriptionLimit-6)+"…", got)
}

func TestDescribeCountsRunes(t *testing.T) {
	text := strings.Repeat("ção ", 50)
	got := Describe(text)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), DescriptionLimit+1)
	assert.True(t, utf8.ValidString(got))
}

func TestDescribeLengthBound(t *testing.T) {
	for n := 140; n < 400; n += 7 {
		text := strings.Repeat("lorem ipsum dolor ", n/18+1)[:n]
		got := Describe(text)
		plain := strings.TrimSpace(text)
		if utf8.RuneCountInString(plain) <= DescriptionLimit {
			assert.Equal(t, plain, got)
			continue
		}
		assert.LessOrEqual(t, utf8.RuneCountInString(got), DescriptionLimit+1, "n=%d", n)
	}
}
