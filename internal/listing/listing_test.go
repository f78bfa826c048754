package listing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/blogtech/internal/util"
	"github.com/mithrel/blogtech/pkg/api"
)

func sample() []api.Article {
	return []api.Article{
		{ID: 1, Slug: "old", Title: "Hooks no React", Date: "2023-01-10", Tags: []string{"React", "hooks"}, Status: api.StatusPublished},
		{ID: 2, Slug: "draft", Title: "Rascunho", Date: "2025-01-01", Status: api.StatusDraft},
		{ID: 3, Slug: "nodate", Title: "Sem data", Tags: []string{"carreira"}, Status: api.StatusPublished},
		{ID: 4, Slug: "new", Title: "PWA offline", Date: "2024-06-01T09:00:00Z", Tags: []string{"pwa", "js"}, Status: api.StatusPublished},
		{ID: 5, Slug: "bad", Title: "Data ruim", Date: "ontem", Status: api.StatusPublished},
	}
}

func slugs(list []api.Article) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Slug
	}
	return out
}

func TestPublished(t *testing.T) {
	got := Published(sample())
	assert.Equal(t, []string{"new", "old", "nodate", "bad"}, slugs(got))
}

func TestFilter(t *testing.T) {
	pub := Published(sample())

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"empty query", Query{}, []string{"new", "old", "nodate", "bad"}},
		{"term in title", Query{Term: "  REACT "}, []string{"old"}},
		{"term in tag", Query{Term: "hook"}, []string{"old"}},
		{"tag exact", Query{Tag: "react"}, []string{"old"}},
		{"tag partial does not match", Query{Tag: "reac"}, []string{}},
		{"term and tag", Query{Term: "pwa", Tag: "js"}, []string{"new"}},
		{"range", Query{Range: util.TimeRange{Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}, []string{"new"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugs(Filter(pub, tt.q)))
		})
	}
}

func TestPaginate(t *testing.T) {
	var list []api.Article
	for i := 1; i <= 14; i++ {
		list = append(list, api.Article{ID: i, Slug: fmt.Sprintf("a%d", i)})
	}

	p := Paginate(list, 1, 0)
	require.Len(t, p.Items, DefaultPerPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 14, p.Total)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = Paginate(list, 3, 6)
	assert.Equal(t, []string{"a13", "a14"}, slugs(p.Items))
	assert.False(t, p.HasNext())

	p = Paginate(list, 99, 6)
	assert.Equal(t, 3, p.Number)
	p = Paginate(list, -1, 6)
	assert.Equal(t, 1, p.Number)

	p = Paginate(nil, 2, 6)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"React", "hooks", "carreira", "pwa", "js"}, Tags(sample()))
}

func TestCategoryClass(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"React", "category-react"},
		{"React Native", "category-react"},
		{"carreira", "category-carreira"},
		{"Carreira em Tech", "category-carreira"},
		{"IA", "category-ia"},
		{"IA Generativa", "category-ia"},
		{"Inteligência Artificial", "category-ia"},
		{"PWA", "category-pwa"},
		{"PWA & Offline", "category-pwa"},
		// keyword order decides overlapping labels
		{"Carreira com React", "category-react"},
		{"Go", "category-default"},
		{"", "category-default"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryClass(tt.category))
		})
	}
}
