package articles

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/mithrel/blogtech/pkg/api"
)

type frontMatter struct {
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug"`
	Author     string   `yaml:"author"`
	Date       string   `yaml:"date"`
	Tags       []string `yaml:"tags"`
	Status     string   `yaml:"status"`
	Draft      bool     `yaml:"draft"`
	Excerpt    string   `yaml:"excerpt"`
	Category   string   `yaml:"category"`
	ReadTime   string   `yaml:"readTime"`
	Image      string   `yaml:"image"`
	ImageAlt   string   `yaml:"imageAlt"`
	Featured   bool     `yaml:"featured"`
	References []string `yaml:"references"`
}

// ParseMarkdown turns a Markdown document with optional YAML front matter
// into an article. The ID is left zero. A missing slug is derived from the
// title, then from fallbackName.
func ParseMarkdown(src []byte, fallbackName string) (api.Article, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return api.Article{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	a := api.Article{
		Slug:       strings.TrimSpace(fm.Slug),
		Title:      strings.TrimSpace(fm.Title),
		Author:     fm.Author,
		Date:       fm.Date,
		Tags:       fm.Tags,
		Content:    strings.TrimSpace(string(body)),
		Status:     api.StatusPublished,
		Excerpt:    fm.Excerpt,
		Category:   fm.Category,
		ReadTime:   fm.ReadTime,
		Image:      fm.Image,
		ImageAlt:   fm.ImageAlt,
		Featured:   fm.Featured,
		References: fm.References,
	}
	switch {
	case fm.Draft:
		a.Status = api.StatusDraft
	case fm.Status != "":
		a.Status = api.Status(strings.ToLower(strings.TrimSpace(fm.Status)))
	}

	if a.Slug == "" {
		for _, src := range []string{a.Title, fallbackName} {
			if s, err := slug.Normalize(src); err == nil && s != "" {
				a.Slug = s
				break
			}
		}
	}
	if a.Slug == "" {
		return api.Article{}, &ShapeError{Index: -1, Reason: "cannot derive slug for " + fallbackName}
	}
	return a, nil
}

// ImportResult lists what an import added and what it refused.
type ImportResult struct {
	Added   []api.Article
	Skipped map[string]error
}

// ImportDir parses every *.md file in dir and appends the new articles to
// existing with ids after the current maximum. Files whose slug already
// exists are skipped.
func ImportDir(dir string, existing []api.Article) ([]api.Article, ImportResult, error) {
	res := ImportResult{Skipped: map[string]error{}}
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return existing, res, err
	}
	sort.Strings(paths)

	taken := make(map[string]bool, len(existing))
	for _, a := range existing {
		taken[a.CleanSlug()] = true
	}
	out := append([]api.Article(nil), existing...)

	for _, p := range paths {
		name := filepath.Base(p)
		src, err := os.ReadFile(p)
		if err != nil {
			res.Skipped[name] = err
			continue
		}
		a, err := ParseMarkdown(src, strings.TrimSuffix(name, filepath.Ext(name)))
		if err == nil {
			err = Validate(-1, a)
		}
		if err != nil {
			res.Skipped[name] = err
			continue
		}
		if taken[a.Slug] {
			res.Skipped[name] = fmt.Errorf("slug %q already exists", a.Slug)
			continue
		}
		a.ID = api.NextID(out)
		taken[a.Slug] = true
		out = append(out, a)
		res.Added = append(res.Added, a)
	}
	return out, res, nil
}
