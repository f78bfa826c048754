package tests

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/blogtech/internal/articles"
	"github.com/mithrel/blogtech/internal/cli"
	"github.com/mithrel/blogtech/internal/config"
	"github.com/mithrel/blogtech/internal/wire"
)

// runCLI executes the CLI with the given args and returns stdout, stderr, and error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

type workspace struct {
	cfg      string
	articles string
	posts    string
	sitemap  string
	markdown string
}

func setupWorkspace(t *testing.T) workspace {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))

	ws := workspace{
		cfg:      filepath.Join(tmpDir, "blogtech.toml"),
		articles: filepath.Join(tmpDir, "articles.json"),
		posts:    filepath.Join(tmpDir, "posts"),
		sitemap:  filepath.Join(tmpDir, "sitemap.xml"),
		markdown: filepath.Join(tmpDir, "md"),
	}
	require.NoError(t, os.MkdirAll(ws.markdown, 0o755))

	cfg := `articles = "` + filepath.ToSlash(ws.articles) + `"
data_dir = "` + filepath.ToSlash(filepath.Join(tmpDir, "data")) + `"

[log]
level = "error"

[build]
output_dir = "` + filepath.ToSlash(ws.posts) + `"

[sitemap]
base_url = "https://blog.example.com"
link_mode = "static"
output = "` + filepath.ToSlash(ws.sitemap) + `"
`
	require.NoError(t, os.WriteFile(ws.cfg, []byte(cfg), 0o600))

	posts := map[string]string{
		"docker.md": "---\ntitle: Docker para iniciantes\nauthor: Bia\ndate: 2024-02-10\ntags: [devops, docker]\n---\n\n# Docker\n\nContainers **leves**.\n",
		"go.md":     "---\ntitle: Concorrência em Go\nslug: concorrencia-em-go\ndate: 2024-04-20\ntags: [go]\n---\n\nGoroutines e `errgroup`.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n",
		"wip.md":    "---\ntitle: Ainda escrevendo\ndraft: true\n---\n\nTexto.\n",
	}
	for name, body := range posts {
		require.NoError(t, os.WriteFile(filepath.Join(ws.markdown, name), []byte(body), 0o644))
	}
	return ws
}

func TestE2E_ImportBuildPublish(t *testing.T) {
	ws := setupWorkspace(t)

	t.Run("Import", func(t *testing.T) {
		out, _, err := runCLI(t, "--config", ws.cfg, "import", ws.markdown)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported: 3")

		list, err := articles.Load(ws.articles)
		require.NoError(t, err)
		require.Len(t, list, 3)
		slugs := make([]string, 0, len(list))
		for _, a := range list {
			slugs = append(slugs, a.Slug)
		}
		assert.ElementsMatch(t, []string{"docker-para-iniciantes", "concorrencia-em-go", "ainda-escrevendo"}, slugs)
	})

	t.Run("Build", func(t *testing.T) {
		out, _, err := runCLI(t, "--config", ws.cfg, "build")
		require.NoError(t, err)
		assert.Contains(t, out, "Built: 2")
		assert.Contains(t, out, "Skipped: 1")

		doc, err := os.ReadFile(filepath.Join(ws.posts, "concorrencia-em-go.html"))
		require.NoError(t, err)
		html := string(doc)
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
		assert.Contains(t, html, "<title>Concorrência em Go</title>")
		assert.Contains(t, html, `<div class="table-responsive"><table>`)
		assert.Contains(t, html, "Autor desconhecido")

		_, err = os.Stat(filepath.Join(ws.posts, "ainda-escrevendo.html"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Rebuild Is Incremental", func(t *testing.T) {
		out, _, err := runCLI(t, "--config", ws.cfg, "build")
		require.NoError(t, err)
		assert.Contains(t, out, "Built: 0")
	})

	t.Run("Sitemap", func(t *testing.T) {
		_, _, err := runCLI(t, "--config", ws.cfg, "sitemap")
		require.NoError(t, err)
		data, err := os.ReadFile(ws.sitemap)
		require.NoError(t, err)
		xml := string(data)
		assert.Contains(t, xml, "<loc>https://blog.example.com/posts/docker-para-iniciantes.html</loc>")
		assert.Contains(t, xml, "<lastmod>2024-04-20</lastmod>")
		assert.NotContains(t, xml, "ainda-escrevendo")
	})

	t.Run("List", func(t *testing.T) {
		out, _, err := runCLI(t, "--config", ws.cfg, "list", "--tag", "docker", "--noheaders")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "docker-para-iniciantes")
	})
}

func TestE2E_WiredBuilder(t *testing.T) {
	ws := setupWorkspace(t)
	_, _, err := runCLI(t, "--config", ws.cfg, "import", ws.markdown)
	require.NoError(t, err)

	ctx := context.Background()
	v := viper.New()
	v.SetConfigFile(ws.cfg)
	require.NoError(t, config.Load(ctx, v))
	v.Set("build.incremental", false)
	v.Set("render.engine", "basic")
	require.NoError(t, config.CheckConfigValidity(v))

	dark := false
	app, err := wire.BuildApp(ctx, v, wire.Options{SystemDark: &dark})
	require.NoError(t, err)
	defer app.Close()
	assert.Equal(t, "light", app.Theme)

	list, err := articles.Load(app.ArticlesPath())
	require.NoError(t, err)
	res, err := app.Builder.Build(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Built())
	assert.NoError(t, res.Err())

	doc, err := os.ReadFile(filepath.Join(ws.posts, "docker-para-iniciantes.html"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<h1>Docker</h1>")
	assert.Contains(t, string(doc), "<strong>leves</strong>")
}
