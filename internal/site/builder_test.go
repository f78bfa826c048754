package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/internal/db"
	"github.com/mithrel/blogtech/internal/page"
	"github.com/mithrel/blogtech/internal/render"
	"github.com/mithrel/blogtech/pkg/api"
)

func newBuilder(t *testing.T, engine string, m db.Manifest, opts Options) *Builder {
	t.Helper()
	r, err := render.New(render.Options{Engine: engine})
	require.NoError(t, err)
	a := page.New(page.Options{Now: func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }})
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(t.TempDir(), "posts")
	}
	return New(r, a, m, nil, opts)
}

func input() []api.Article {
	return []api.Article{
		{ID: 1, Slug: "hello", Title: "Hello", Date: "2024-03-05", Content: "# Hello\n\nSome **bold** text", Tags: []string{"go"}, Status: api.StatusPublished},
		{ID: 2, Slug: "  ", Title: "Broken", Content: "x", Status: api.StatusPublished},
		{ID: 3, Slug: "wip", Title: "Draft", Content: "soon", Status: api.StatusDraft},
		{ID: 4, Slug: "empty", Title: "Empty", Status: api.StatusPublished},
	}
}

func TestBuildPerRecordOutcomes(t *testing.T) {
	b := newBuilder(t, render.EngineBasic, nil, Options{})
	res, err := b.Build(context.Background(), input())
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 4)

	assert.Equal(t, StatusBuilt, res.Outcomes[0].Status)
	assert.Equal(t, StatusFailed, res.Outcomes[1].Status)
	assert.Equal(t, StatusSkipped, res.Outcomes[2].Status)
	assert.Equal(t, StatusBuilt, res.Outcomes[3].Status)
	assert.Equal(t, 2, res.Built())
	assert.Equal(t, 1, res.Skipped())
	assert.Equal(t, 1, res.Failed())

	var se *articles.ShapeError
	require.True(t, errors.As(res.Err(), &se))
	assert.Equal(t, 1, se.Index)

	doc, err := os.ReadFile(filepath.Join(b.OutputDir(), "hello.html"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<h1>Hello</h1>")
	assert.Contains(t, string(doc), "<strong>bold</strong>")
	assert.Contains(t, string(doc), `<meta name="description" content="Hello Some bold text" />`)

	doc, err = os.ReadFile(filepath.Join(b.OutputDir(), "empty.html"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), render.EmptyPlaceholder)

	_, err = os.Stat(filepath.Join(b.OutputDir(), "wip.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildIncludeDrafts(t *testing.T) {
	b := newBuilder(t, render.EngineBasic, nil, Options{}).WithDrafts(true)
	res, err := b.Build(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, StatusBuilt, res.Outcomes[2].Status)
}

func TestBuildFailFast(t *testing.T) {
	b := newBuilder(t, render.EngineBasic, nil, Options{Workers: 1}).WithFailFast(true)
	res, err := b.Build(context.Background(), input())
	var se *articles.ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StatusFailed, res.Outcomes[1].Status)
}

func TestBuildDuplicateSlug(t *testing.T) {
	list := []api.Article{
		{ID: 1, Slug: "same", Content: "a", Status: api.StatusPublished},
		{ID: 2, Slug: "same", Content: "b", Status: api.StatusPublished},
	}
	b := newBuilder(t, render.EngineGoldmark, nil, Options{})
	res, err := b.Build(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilt, res.Outcomes[0].Status)
	assert.Equal(t, StatusFailed, res.Outcomes[1].Status)
	assert.Contains(t, res.Outcomes[1].Reason, "duplicate slug")
}

func TestBuildIncremental(t *testing.T) {
	ctx := context.Background()
	store, err := db.Open(ctx, "mem://")
	require.NoError(t, err)

	list := input()[:1]
	b := newBuilder(t, render.EngineGoldmark, store.Manifest, Options{Incremental: true})

	res, err := b.Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Built())

	rec, err := store.Manifest.Get(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, list[0].Hash(), rec.Hash)
	assert.Equal(t, render.EngineGoldmark, rec.Engine)

	res, err = b.Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Outcomes[0].Status)
	assert.Equal(t, "unchanged", res.Outcomes[0].Reason)

	res, err = b.WithForce(true).Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Built())

	list[0].Content += "\n\nmore"
	res, err = b.Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Built())

	require.NoError(t, os.Remove(filepath.Join(b.OutputDir(), "hello.html")))
	res, err = b.Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Built())
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := newBuilder(t, render.EngineBasic, nil, Options{})
	res, err := b.Build(ctx, input())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Built())
	for _, o := range res.Outcomes {
		assert.Equal(t, StatusSkipped, o.Status)
	}
}

func TestBuildIncrementalRebuildsOnSettingsChange(t *testing.T) {
	ctx := context.Background()
	store, err := db.Open(ctx, "mem://")
	require.NoError(t, err)
	outDir := filepath.Join(t.TempDir(), "posts")
	now := func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	builder := func(trust bool, a page.Options) *Builder {
		r, err := render.New(render.Options{Engine: render.EngineGoldmark, TrustHTML: trust})
		require.NoError(t, err)
		a.Now = now
		return New(r, page.New(a), store.Manifest, nil, Options{OutputDir: outDir, Incremental: true})
	}
	list := []api.Article{{ID: 1, Slug: "raw", Title: "Raw", Content: "<script>alert(1)</script>\n\ntext", Status: api.StatusPublished}}
	read := func() string {
		doc, err := os.ReadFile(filepath.Join(outDir, "raw.html"))
		require.NoError(t, err)
		return string(doc)
	}

	res, err := builder(true, page.Options{SiteName: "OldName"}).Build(ctx, list)
	require.NoError(t, err)
	require.Equal(t, 1, res.Built())
	assert.Contains(t, read(), "<script>")

	// same settings: skipped
	res, err = builder(true, page.Options{SiteName: "OldName"}).Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", res.Outcomes[0].Reason)

	res, err = builder(false, page.Options{SiteName: "OldName"}).Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilt, res.Outcomes[0].Status)
	assert.NotContains(t, read(), "<script>")

	res, err = builder(false, page.Options{SiteName: "NewName", Theme: "dark"}).Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, StatusBuilt, res.Outcomes[0].Status)
	doc := read()
	assert.Contains(t, doc, "NewName")
	assert.NotContains(t, doc, "OldName")
	assert.Contains(t, doc, `data-theme="dark"`)
}

func TestBuildRejectsUnsafeSlug(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "posts")
	b := newBuilder(t, render.EngineBasic, nil, Options{OutputDir: outDir})
	list := []api.Article{
		{ID: 1, Slug: "../escaped", Content: "x", Status: api.StatusPublished},
		{ID: 2, Slug: "sub/dir", Content: "x", Status: api.StatusPublished},
		{ID: 3, Slug: "fine", Content: "x", Status: api.StatusPublished},
	}
	res, err := b.Build(context.Background(), list)
	require.NoError(t, err)

	var se *articles.ShapeError
	for _, o := range res.Outcomes[:2] {
		assert.Equal(t, StatusFailed, o.Status)
		require.True(t, errors.As(o.Err, &se))
		assert.Contains(t, o.Reason, "invalid slug")
	}
	assert.Equal(t, StatusBuilt, res.Outcomes[2].Status)

	_, err = os.Stat(filepath.Join(root, "escaped.html"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(outDir, "sub"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildCopiesRunConcurrently(t *testing.T) {
	b := newBuilder(t, render.EngineGoldmark, nil, Options{})
	list := input()[:1]

	var wg sync.WaitGroup
	for _, nb := range []*Builder{b, b.WithForce(true), b.WithFailFast(true), b.WithDrafts(true)} {
		wg.Add(1)
		go func(nb *Builder) {
			defer wg.Done()
			res, err := nb.Build(context.Background(), list)
			assert.NoError(t, err)
			assert.Equal(t, 1, res.Built())
		}(nb)
	}
	wg.Wait()
}
