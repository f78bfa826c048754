// Package sitemap renders sitemap.xml for the blog.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mithrel/blogtech/internal/listing"
	"github.com/mithrel/blogtech/internal/util"
	"github.com/mithrel/blogtech/pkg/api"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Link modes for article URLs.
const (
	LinkQuery  = "query"  // blog-post.html?id=<id>
	LinkStatic = "static" // posts/<slug>.html
)

// Options configures sitemap generation.
type Options struct {
	BaseURL  string
	LinkMode string
	// Today is used as lastmod for articles without a usable date.
	Today func() time.Time
}

// URL is one <url> entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// ValidLinkMode reports whether mode is a known link mode.
func ValidLinkMode(mode string) bool { return mode == LinkQuery || mode == LinkStatic }

// Build collects the static pages and one entry per published article.
func Build(list []api.Article, opts Options) (URLSet, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return URLSet{}, fmt.Errorf("sitemap: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return URLSet{}, fmt.Errorf("sitemap: invalid base url: %w", err)
	}
	mode := opts.LinkMode
	if mode == "" {
		mode = LinkQuery
	}
	if !ValidLinkMode(mode) {
		return URLSet{}, fmt.Errorf("sitemap: unknown link mode %q (want query|static)", mode)
	}
	today := opts.Today
	if today == nil {
		today = time.Now
	}

	set := URLSet{Xmlns: xmlns}
	set.URLs = append(set.URLs,
		URL{Loc: base + "/index.html", ChangeFreq: "monthly", Priority: "1.0"},
		URL{Loc: base + "/blog.html", ChangeFreq: "monthly", Priority: "0.9"},
	)
	for _, a := range listing.Published(list) {
		set.URLs = append(set.URLs, URL{
			Loc:        base + "/" + articlePath(a, mode),
			LastMod:    lastMod(a.Date, today),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}
	return set, nil
}

// Write encodes set as an indented XML document.
func Write(w io.Writer, set URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func articlePath(a api.Article, mode string) string {
	if mode == LinkStatic {
		return "posts/" + url.PathEscape(a.CleanSlug()) + ".html"
	}
	return "blog-post.html?id=" + strconv.Itoa(a.ID)
}

func lastMod(date string, today func() time.Time) string {
	if t, err := util.ParseDate(strings.TrimSpace(date)); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	return today().UTC().Format("2006-01-02")
}
