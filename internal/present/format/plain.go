package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/blogtech/pkg/api"
)

// TSV columns: id, slug, date, status, title, tags
var headerLine = "id\tslug\tdate\tstatus\ttitle\ttags\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// JoinTags joins tags with commas and no spaces.
func JoinTags(tags []string) string { return strings.Join(tags, ",") }

func plainLine(a api.Article) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\n",
		a.ID, esc(a.CleanSlug()), esc(a.Date), esc(string(a.Status)), esc(a.Title), esc(JoinTags(a.Tags)))
}

func WritePlainArticles(w io.Writer, list []api.Article, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, a := range list {
		_, _ = io.WriteString(tw, plainLine(a))
	}
	return tw.Flush()
}

func WritePlainArticle(w io.Writer, a api.Article, headers bool) error {
	return WritePlainArticles(w, []api.Article{a}, headers)
}
