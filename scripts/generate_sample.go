//go:build ignore
// +build ignore

// Writes a deterministic articles.json for trying out build and list.
//
//	go run scripts/generate_sample.go [path]
package main

import (
	"fmt"
	mrand "math/rand"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/pkg/api"
)

var topics = []string{"React", "Go", "PWA", "CSS", "SQLite", "Docker", "Testes", "Acessibilidade"}

var categories = []string{"frontend", "backend", "devops", "carreira"}

func main() {
	path := "articles.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	const total = 60
	out := make([]api.Article, 0, total)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < total; i++ {
		topic := topics[mr.Intn(len(topics))]
		title := fmt.Sprintf("%s na prática, parte %d", topic, i+1)
		date := base.AddDate(0, 0, -(7*i + mr.Intn(5)))

		status := api.StatusPublished
		if i%10 == 9 {
			status = api.StatusDraft
		}

		a := api.Article{
			ID:       i + 1,
			Slug:     slug.Normalize(title),
			Title:    title,
			Author:   "Equipe BlogTech",
			Date:     date.Format("2006-01-02"),
			Tags:     sampleTags(mr, topic),
			Category: categories[mr.Intn(len(categories))],
			ReadTime: fmt.Sprintf("%d min", 3+mr.Intn(10)),
			Status:   status,
			Content:  sampleBody(topic, i+1),
		}
		a.Excerpt = fmt.Sprintf("Notas sobre %s, parte %d.", topic, i+1)
		out = append(out, a)
	}

	if err := articles.Save(path, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d articles to %s\n", len(out), path)
}

func sampleTags(r *mrand.Rand, topic string) []string {
	tags := []string{strings.ToLower(topic)}
	if r.Float64() < 0.5 {
		tags = append(tags, "tutorial")
	}
	return tags
}

func sampleBody(topic string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s, parte %d\n\n", topic, n)
	fmt.Fprintf(&b, "Este texto mostra **%s** em um projeto real.\n\n", topic)
	b.WriteString("## Passos\n\n- instalar\n- configurar\n- publicar\n\n")
	b.WriteString("```sh\nmake build\n```\n")
	return b.String()
}
