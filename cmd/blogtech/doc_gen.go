//go:build ignore
// +build ignore

// Generates the command reference: Markdown pages with front matter under
// docs/cli (so the reference can be imported as articles) and man pages
// under docs/man.
//
//	go run cmd/blogtech/doc_gen.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra/doc"

	blogtech "github.com/mithrel/blogtech/internal/cli"
)

const (
	markdownDir = "docs/cli"
	manDir      = "docs/man"
)

func main() {
	root := blogtech.NewRootCmd()
	root.DisableAutoGenTag = true

	for _, dir := range []string{markdownDir, manDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	today := time.Now().Format("2006-01-02")
	prepend := func(filename string) string {
		name := strings.TrimSuffix(filepath.Base(filename), ".md")
		title := strings.ReplaceAll(name, "_", " ")
		return fmt.Sprintf("---\ntitle: %q\nslug: %s\ndate: %s\ntags: [cli, referência]\n---\n\n", title, strings.ReplaceAll(name, "_", "-"), today)
	}
	link := func(name string) string {
		return strings.ReplaceAll(strings.TrimSuffix(name, ".md"), "_", "-") + ".html"
	}
	if err := doc.GenMarkdownTreeCustom(root, markdownDir, prepend, link); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "BLOGTECH",
		Section: "1",
		Source:  "blogtech",
		Manual:  "BlogTech static site tools",
	}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		log.Fatal(err)
	}
}
