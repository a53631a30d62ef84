// Package site drives a full build: read posts, render markdown,
// substitute templates, write the output tree.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/dmose/bpblog/internal/config"
	"github.com/dmose/bpblog/internal/post"
	"github.com/dmose/bpblog/internal/render"
)

const (
	postTemplate  = "post.html"
	indexTemplate = "index.html"
	stylesheet    = "styles.css"
)

// Builder runs build passes over one site. Safe to reuse across
// passes; the dev loop calls Build on every rebuild.
type Builder struct {
	cfg config.Config
	log *slog.Logger
	md  *render.Markdown
}

func NewBuilder(cfg config.Config, log *slog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log, md: render.NewMarkdown()}
}

// Build runs one pass: prepare the output directory, load templates,
// parse and render every post (drafts included), write the index over
// the non-draft set, and copy the stylesheet if one exists. Any
// unreadable template, unparsable post, or write failure aborts the
// whole pass.
func (b *Builder) Build(ctx context.Context) error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", b.cfg.OutputDir, err)
	}

	postTpl, err := b.readTemplate(postTemplate)
	if err != nil {
		return err
	}
	indexTpl, err := b.readTemplate(indexTemplate)
	if err != nil {
		return err
	}

	posts, err := b.loadPosts()
	if err != nil {
		return err
	}
	post.SortByDate(posts)

	// Post pages have no ordering dependency on each other; only the
	// index needs the complete set.
	g, _ := errgroup.WithContext(ctx)
	for _, p := range posts {
		p := p
		g.Go(func() error {
			return b.writePage(p, postTpl)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	index := render.Index(indexTpl, post.FilterForIndex(posts))
	indexPath := filepath.Join(b.cfg.OutputDir, "index.html")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", indexPath, err)
	}

	if err := b.copyStylesheet(); err != nil {
		return err
	}

	b.log.Info("site built", "posts", len(posts))
	return nil
}

func (b *Builder) readTemplate(name string) (string, error) {
	path := filepath.Join(b.cfg.TemplatesDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}

// loadPosts reads every post file in the posts directory, parses its
// frontmatter, and converts its body to HTML. Files without the post
// extension are skipped; any other failure aborts the build.
func (b *Builder) loadPosts() ([]*post.Post, error) {
	entries, err := os.ReadDir(b.cfg.PostsDir)
	if err != nil {
		return nil, fmt.Errorf("reading posts directory %s: %w", b.cfg.PostsDir, err)
	}

	var posts []*post.Post
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(b.cfg.PostsDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		p, err := post.Parse(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		html, err := b.md.Convert([]byte(p.Content))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", path, err)
		}
		p.HTML = html
		posts = append(posts, p)
	}

	b.log.Debug("posts found", "count", len(posts))
	return posts, nil
}

func (b *Builder) writePage(p *post.Post, tpl string) error {
	path := filepath.Join(b.cfg.OutputDir, p.Slug+".html")
	if err := os.WriteFile(path, []byte(render.Page(tpl, p)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	b.log.Debug("page written", "slug", p.Slug)
	return nil
}

// copyStylesheet copies templates/styles.css into the output tree.
// The stylesheet is optional; its absence is not an error.
func (b *Builder) copyStylesheet() error {
	src := filepath.Join(b.cfg.TemplatesDir, stylesheet)
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		b.log.Debug("no stylesheet, skipping copy")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	dst := filepath.Join(b.cfg.OutputDir, stylesheet)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("copying stylesheet to %s: %w", dst, err)
	}
	return nil
}
