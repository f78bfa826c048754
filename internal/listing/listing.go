// Package listing selects, orders and pages articles for index views.
package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/mithrel/blogtech/internal/util"
	"github.com/mithrel/blogtech/pkg/api"
)

// DefaultPerPage is the number of cards on one blog index page.
const DefaultPerPage = 6

// Query narrows a listing. Empty fields match everything.
type Query struct {
	Term  string
	Tag   string
	Range util.TimeRange
}

// Page is one slice of a paginated listing.
type Page struct {
	Items      []api.Article
	Number     int
	TotalPages int
	Total      int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Published returns the published articles, newest first. Articles without
// a parseable date sort last, keeping their input order.
func Published(list []api.Article) []api.Article {
	out := make([]api.Article, 0, len(list))
	for _, a := range list {
		if a.Published() {
			out = append(out, a)
		}
	}
	SortByDate(out)
	return out
}

// SortByDate orders articles newest first in place.
func SortByDate(list []api.Article) {
	sort.SliceStable(list, func(i, j int) bool {
		ti, oki := dateOf(list[i])
		tj, okj := dateOf(list[j])
		switch {
		case oki && okj:
			return ti.After(tj)
		case oki:
			return true
		default:
			return false
		}
	})
}

// Filter keeps the articles matching q.
func Filter(list []api.Article, q Query) []api.Article {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	tag := strings.TrimSpace(q.Tag)
	out := make([]api.Article, 0, len(list))
	for _, a := range list {
		if term != "" && !matchesTerm(a, term) {
			continue
		}
		if tag != "" && !a.HasTag(tag) {
			continue
		}
		if !q.Range.IsZero() {
			t, ok := dateOf(a)
			if !ok || !q.Range.Contains(t) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func matchesTerm(a api.Article, term string) bool {
	if strings.Contains(strings.ToLower(a.Title), term) {
		return true
	}
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// Paginate returns page number n (1-based) of list. The page is clamped to
// the valid range; an empty list yields one empty page.
func Paginate(list []api.Article, n, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := (len(list) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	start := (n - 1) * perPage
	end := min(start+perPage, len(list))
	return Page{Items: list[start:end], Number: n, TotalPages: total, Total: len(list)}
}

// Tags returns the distinct tags across list in first-seen order.
func Tags(list []api.Article) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range list {
		for _, t := range a.Tags {
			k := strings.ToLower(t)
			if !seen[k] {
				seen[k] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// categoryClasses is checked in order; the first keyword contained in the
// label wins.
var categoryClasses = []struct{ keyword, class string }{
	{"react", "category-react"},
	{"carreira", "category-carreira"},
	{"ia", "category-ia"},
	{"pwa", "category-pwa"},
}

// CategoryClass maps a category label to its badge CSS class.
func CategoryClass(category string) string {
	c := strings.ToLower(category)
	for _, cc := range categoryClasses {
		if strings.Contains(c, cc.keyword) {
			return cc.class
		}
	}
	return "category-default"
}

func dateOf(a api.Article) (time.Time, bool) {
	if strings.TrimSpace(a.Date) == "" {
		return time.Time{}, false
	}
	t, err := util.ParseDate(a.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
