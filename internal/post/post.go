package post

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Extension is the recognized post-file extension.
const Extension = ".md"

// Meta holds the YAML frontmatter fields of a post. Absent fields
// stay zero-valued; no validation is applied, so a post without a
// title renders with an empty title rather than failing the build.
type Meta struct {
	Title string    `yaml:"title"`
	Date  time.Time `yaml:"date"`
	Tags  []string  `yaml:"tags"`
	Draft bool      `yaml:"draft"`
}

// Post is one source file parsed for a single build pass. It is
// assembled once and never mutated afterwards, except that the build
// fills HTML after markdown conversion.
type Post struct {
	Slug    string
	Meta    Meta
	Content string
	HTML    string
}

// Parse splits a post file into frontmatter and markdown body.
// Filenames without the post extension return (nil, nil) and are
// skipped by the caller. A frontmatter decode failure is an error;
// the build treats it as fatal rather than skipping the post.
func Parse(filename string, data []byte) (*Post, error) {
	ext := filepath.Ext(filename)
	if !strings.EqualFold(ext, Extension) {
		return nil, nil
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter of %s: %w", filename, err)
	}

	return &Post{
		Slug:    strings.TrimSuffix(filepath.Base(filename), ext),
		Meta:    meta,
		Content: string(body),
	}, nil
}

// SortByDate orders posts newest first. Posts sharing a date are
// ordered by slug ascending so builds are deterministic.
func SortByDate(posts []*Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Meta.Date.Equal(posts[j].Meta.Date) {
			return posts[i].Slug < posts[j].Slug
		}
		return posts[i].Meta.Date.After(posts[j].Meta.Date)
	})
}

// FilterForIndex returns the posts that appear in the index listing:
// drafts are dropped, the rest sorted newest first. Drafts are still
// built to their own pages; they are only hidden from the listing.
func FilterForIndex(posts []*Post) []*Post {
	published := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p.Meta.Draft {
			continue
		}
		published = append(published, p)
	}
	SortByDate(published)
	return published
}

// Slugify derives a URL-safe slug from a title: lowercased, with
// runs of non-alphanumeric characters collapsed to single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
