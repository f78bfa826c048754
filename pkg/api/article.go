package api

import (
	"regexp"
	"strings"
)

// Status is the publication state of an article.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

// Article is one blog post as stored in articles.json.
type Article struct {
	ID         int      `json:"id"`
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Author     string   `json:"author,omitempty"`
	Date       string   `json:"date,omitempty"` // ISO-8601, kept verbatim
	Tags       []string `json:"tags,omitempty"`
	Content    string   `json:"content"`
	Status     Status   `json:"status"`
	Excerpt    string   `json:"excerpt,omitempty"`
	Category   string   `json:"category,omitempty"`
	ReadTime   string   `json:"readTime,omitempty"`
	Image      string   `json:"image,omitempty"`
	ImageAlt   string   `json:"imageAlt,omitempty"`
	Featured   bool     `json:"featured,omitempty"`
	References []string `json:"references,omitempty"`
}

// Published reports whether the article may appear in public listings.
func (a Article) Published() bool { return a.Status == StatusPublished }

// CleanSlug returns the trimmed slug.
func (a Article) CleanSlug() string { return strings.TrimSpace(a.Slug) }

var slugRe = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._~-]*$`)

// ValidSlug reports whether s can be used both in a URL and as a file name
// stem: unreserved URL characters only, no leading dot and no "..".
func ValidSlug(s string) bool {
	return slugRe.MatchString(s) && !strings.Contains(s, "..")
}

// FileName is the output file name for the article's standalone page.
func (a Article) FileName() string { return a.CleanSlug() + ".html" }

// HasTag reports whether the article carries tag (case-insensitive).
func (a Article) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range a.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}
