package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmose/bpblog/internal/logging"
	"github.com/dmose/bpblog/internal/post"
)

func setupNewTest(t *testing.T) {
	t.Helper()
	appConfig.PostsDir = filepath.Join(t.TempDir(), "posts")
	logger = logging.New(false)
	newDraft = false
}

func scaffoldPath(title string) string {
	name := time.Now().Format("2006-01-02") + "-" + post.Slugify(title) + post.Extension
	return filepath.Join(appConfig.PostsDir, name)
}

// The scaffold has to parse back through the same frontmatter path a
// build uses.
func TestRunNew_ScaffoldRoundTrips(t *testing.T) {
	setupNewTest(t)
	require.NoError(t, runNew("My First Post"))

	path := scaffoldPath("My First Post")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	p, err := post.Parse(filepath.Base(path), data)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "My First Post", p.Meta.Title)
	assert.False(t, p.Meta.Draft)
	assert.False(t, p.Meta.Date.IsZero())
}

func TestRunNew_DraftFlag(t *testing.T) {
	setupNewTest(t)
	newDraft = true
	require.NoError(t, runNew("Work In Progress"))

	data, err := os.ReadFile(scaffoldPath("Work In Progress"))
	require.NoError(t, err)

	p, err := post.Parse("x.md", data)
	require.NoError(t, err)
	assert.True(t, p.Meta.Draft)
}

func TestRunNew_TitleFromSlug(t *testing.T) {
	setupNewTest(t)
	require.NoError(t, runNew("hello-world"))

	data, err := os.ReadFile(scaffoldPath("hello-world"))
	require.NoError(t, err)

	p, err := post.Parse("x.md", data)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", p.Meta.Title)
}

func TestRunNew_RefusesToOverwrite(t *testing.T) {
	setupNewTest(t)
	require.NoError(t, runNew("Twice"))
	assert.Error(t, runNew("Twice"))
}

func TestRunNew_RejectsEmptySlug(t *testing.T) {
	setupNewTest(t)
	assert.Error(t, runNew("!!!"))
}
