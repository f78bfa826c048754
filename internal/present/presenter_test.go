package present

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/blogtech/pkg/api"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"plain", "pretty", "json", "ndjson", "tui", "html"} {
		_, ok := ParseMode(s)
		assert.True(t, ok, s)
	}
	m, ok := ParseMode("xml")
	assert.False(t, ok)
	assert.Equal(t, ModePlain, m)
}

func TestRenderArticlesDispatch(t *testing.T) {
	list := []api.Article{
		{ID: 1, Slug: "hooks", Title: "Hooks", Status: api.StatusPublished},
		{ID: 2, Slug: "pwa", Title: "PWA", Status: api.StatusPublished},
	}
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, RenderArticles(ctx, &buf, list, Options{Mode: ModeNDJSON}))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 2)

	buf.Reset()
	require.NoError(t, RenderArticles(ctx, &buf, list, Options{Mode: ModePlain}))
	assert.Contains(t, buf.String(), "pwa")

	assert.Error(t, RenderArticles(ctx, &buf, list, Options{Mode: ModeHTML}))
}

func TestRenderArticleJSON(t *testing.T) {
	var buf bytes.Buffer
	a := api.Article{ID: 7, Slug: "go", Title: "Go"}
	require.NoError(t, RenderArticle(context.Background(), &buf, a, Options{Mode: ModeJSON}))
	assert.Contains(t, buf.String(), `"slug":"go"`)
}
