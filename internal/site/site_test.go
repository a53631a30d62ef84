package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmose/bpblog/internal/config"
)

const (
	postTpl  = "<!doctype html><title>{{title}}</title><h1>{{title}}</h1><time>{{date}}</time><main>{{content}}</main>"
	indexTpl = "<!doctype html><title>Blog</title><ul>{{posts}}</ul>"
)

type fixture struct {
	cfg config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		PostsDir:     filepath.Join(root, "posts"),
		TemplatesDir: filepath.Join(root, "templates"),
		OutputDir:    filepath.Join(root, "public"),
	}
	require.NoError(t, os.MkdirAll(cfg.PostsDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.TemplatesDir, 0o755))
	f := &fixture{cfg: cfg}
	f.writeTemplate(t, "post.html", postTpl)
	f.writeTemplate(t, "index.html", indexTpl)
	return f
}

func (f *fixture) writeTemplate(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.TemplatesDir, name), []byte(content), 0o644))
}

func (f *fixture) writePost(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.PostsDir, name), []byte(content), 0o644))
}

func (f *fixture) build(t *testing.T) error {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return NewBuilder(f.cfg, log).Build(context.Background())
}

func (f *fixture) output(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestBuild_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.writePost(t, "2024-01-15-hello-world.md",
		"---\ntitle: \"Hello World\"\ndate: 2024-01-15\ntags: [intro]\n---\nWelcome to my blog!")

	require.NoError(t, f.build(t))

	page := f.output(t, "2024-01-15-hello-world.html")
	assert.Contains(t, page, "<h1>Hello World</h1>")
	assert.Contains(t, page, "Welcome to my blog!")
	assert.Contains(t, page, "January 15, 2024")
	assert.NotContains(t, page, "{{")

	index := f.output(t, "index.html")
	assert.Contains(t, index, `<a href="2024-01-15-hello-world.html">Hello World</a>`)
}

// Drafts get their own page, directly reachable by URL, but never a
// line in the index listing.
func TestBuild_DraftExcludedFromIndexOnly(t *testing.T) {
	f := newFixture(t)
	f.writePost(t, "published.md", "---\ntitle: Published Post\ndate: 2024-02-01\n---\nout there")
	f.writePost(t, "secret.md", "---\ntitle: Secret Draft\ndate: 2024-03-01\ndraft: true\n---\nshh")

	require.NoError(t, f.build(t))

	assert.FileExists(t, filepath.Join(f.cfg.OutputDir, "published.html"))
	assert.FileExists(t, filepath.Join(f.cfg.OutputDir, "secret.html"))

	index := f.output(t, "index.html")
	assert.Contains(t, index, "Published Post")
	assert.NotContains(t, index, "Secret Draft")
}

func TestBuild_IndexNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.writePost(t, "older.md", "---\ntitle: Older\ndate: 2024-01-01\n---\na")
	f.writePost(t, "newer.md", "---\ntitle: Newer\ndate: 2024-06-01\n---\nb")

	require.NoError(t, f.build(t))

	index := f.output(t, "index.html")
	assert.Less(t, strings.Index(index, "Newer"), strings.Index(index, "Older"))
}

func TestBuild_SkipsNonMarkdownFiles(t *testing.T) {
	f := newFixture(t)
	f.writePost(t, "notes.txt", "not a post")
	f.writePost(t, "real.md", "---\ntitle: Real\ndate: 2024-01-01\n---\nhi")

	require.NoError(t, f.build(t))

	assert.NoFileExists(t, filepath.Join(f.cfg.OutputDir, "notes.html"))
	assert.FileExists(t, filepath.Join(f.cfg.OutputDir, "real.html"))
}

func TestBuild_CreatesOutputDir(t *testing.T) {
	f := newFixture(t)
	require.NoDirExists(t, f.cfg.OutputDir)
	require.NoError(t, f.build(t))
	assert.DirExists(t, f.cfg.OutputDir)
}

func TestBuild_MissingPostTemplateFails(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.cfg.TemplatesDir, "post.html")))
	assert.Error(t, f.build(t))
}

func TestBuild_MissingIndexTemplateFails(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.cfg.TemplatesDir, "index.html")))
	assert.Error(t, f.build(t))
}

func TestBuild_MissingPostsDirFails(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.cfg.PostsDir))
	assert.Error(t, f.build(t))
}

// A single malformed post aborts the whole pass; there is no per-post
// error isolation.
func TestBuild_MalformedPostAbortsBuild(t *testing.T) {
	f := newFixture(t)
	f.writePost(t, "fine.md", "---\ntitle: Fine\ndate: 2024-01-01\n---\nok")
	f.writePost(t, "broken.md", "---\ntitle: [unclosed\n---\nnope")

	assert.Error(t, f.build(t))
}

func TestBuild_CopiesStylesheet(t *testing.T) {
	f := newFixture(t)
	f.writeTemplate(t, "styles.css", "body { margin: 0 }")
	f.writePost(t, "p.md", "---\ntitle: P\ndate: 2024-01-01\n---\nx")

	require.NoError(t, f.build(t))

	assert.Equal(t, "body { margin: 0 }", f.output(t, "styles.css"))
}

func TestBuild_MissingStylesheetIsNotAnError(t *testing.T) {
	f := newFixture(t)
	f.writePost(t, "p.md", "---\ntitle: P\ndate: 2024-01-01\n---\nx")

	require.NoError(t, f.build(t))

	assert.NoFileExists(t, filepath.Join(f.cfg.OutputDir, "styles.css"))
}

func TestBuild_MissingFrontmatterFieldsRenderEmpty(t *testing.T) {
	f := newFixture(t)
	f.writePost(t, "bare.md", "just a body, no frontmatter")

	require.NoError(t, f.build(t))

	page := f.output(t, "bare.html")
	assert.Contains(t, page, "<title></title>")
	assert.Contains(t, page, "just a body, no frontmatter")
}
