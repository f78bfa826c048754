package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererEmptyContent(t *testing.T) {
	for _, engine := range []string{EngineBasic, EngineGoldmark} {
		r, err := New(Options{Engine: engine})
		require.NoError(t, err)
		for _, in := range []string{"", "   ", "\n\t\n"} {
			got := r.Render(in)
			assert.Equal(t, EmptyPlaceholder, got.HTML)
			assert.Empty(t, got.Description)
		}
	}
}

func TestRendererBasicFragment(t *testing.T) {
	r, err := New(Options{Engine: EngineBasic})
	require.NoError(t, err)
	assert.Equal(t, EngineBasic, r.EngineName())

	got := r.Render("# Hello\n\nSome **bold** and *italic* text")
	assert.Equal(t, "<h1>Hello</h1>\n<p>Some <strong>bold</strong> and <em>italic</em> text</p>", got.HTML)
	assert.Equal(t, "Hello Some bold and italic text", got.Description)
}

func TestRendererGoldmark(t *testing.T) {
	r, err := New(Options{Engine: EngineGoldmark, TrustHTML: true})
	require.NoError(t, err)
	assert.Equal(t, EngineGoldmark, r.EngineName())

	got := r.Render("# Hello\n\nSome **bold** text\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	assert.Contains(t, got.HTML, `<h1 id="hello">Hello</h1>`)
	assert.Contains(t, got.HTML, "<strong>bold</strong>")
	assert.Contains(t, got.HTML, `<div class="table-responsive"><table>`)
	assert.Contains(t, got.HTML, "</table></div>")
	assert.Contains(t, got.Description, "Hello Some bold text")
}

func TestRendererGoldmarkSanitizesUntrustedHTML(t *testing.T) {
	r, err := New(Options{Engine: EngineGoldmark})
	require.NoError(t, err)

	got := r.Render("Hi <img src=x onerror=alert(1)>\n\n<script>alert(1)</script>\n\n```go\nx := 1\n```")
	assert.NotContains(t, got.HTML, "onerror")
	assert.NotContains(t, got.HTML, "<script>")
	assert.Contains(t, got.HTML, `class="language-go"`)
}

func TestRendererFingerprint(t *testing.T) {
	fp := func(o Options) string {
		r, err := New(o)
		require.NoError(t, err)
		return r.Fingerprint()
	}
	base := fp(Options{Engine: EngineGoldmark})
	assert.Equal(t, base, fp(Options{Engine: EngineGoldmark}))
	assert.NotEqual(t, base, fp(Options{Engine: EngineGoldmark, TrustHTML: true}))
	assert.NotEqual(t, base, fp(Options{Engine: EngineBasic}))
}

func TestNewEngineUnknown(t *testing.T) {
	_, err := New(Options{Engine: "marked"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown render engine")
}

type failingEngine struct{}

func (failingEngine) Name() string                   { return "failing" }
func (failingEngine) Convert(string) (string, error) { return "", errors.New("boom") }

func TestRendererFallsBackOnEngineError(t *testing.T) {
	r := &Renderer{engine: failingEngine{}, fallback: NewBasicEngine(false)}
	var gotEngine string
	r.OnEngineError(func(engine string, err error) { gotEngine = engine })

	got := r.Render("plain *text*")
	assert.Equal(t, "<p>plain <em>text</em></p>", got.HTML)
	assert.Equal(t, "failing", gotEngine)
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML("  <p>x</p>"))
	assert.True(t, LooksLikeHTML("text <br> more"))
	assert.False(t, LooksLikeHTML("a < b"))
	assert.False(t, LooksLikeHTML("# Title"))
}
