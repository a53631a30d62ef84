// Package render turns posts into HTML. Templates here are plain text
// with {{name}} tokens, not html/template: the template language is
// literal string substitution with no conditionals or loops, so every
// occurrence of a token is replaced with a plain string.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmose/bpblog/internal/post"
)

const dateLayout = "January 2, 2006"

// FormatDate renders a post date for display, e.g. "January 17, 2026".
// A zero date (missing frontmatter field) renders as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Page substitutes a post into the post template. All occurrences of
// each placeholder are replaced, so a token used in both the head and
// the body of the template is filled in both places.
func Page(tpl string, p *post.Post) string {
	out := strings.ReplaceAll(tpl, "{{title}}", p.Meta.Title)
	out = strings.ReplaceAll(out, "{{date}}", FormatDate(p.Meta.Date))
	out = strings.ReplaceAll(out, "{{content}}", p.HTML)
	return out
}

// Index substitutes the post listing into the index template. Posts
// must already be filtered and sorted; each becomes a list item
// linking to its page, and the joined items replace {{posts}}, the
// only placeholder the index template recognizes.
func Index(tpl string, posts []*post.Post) string {
	items := make([]string, 0, len(posts))
	for _, p := range posts {
		items = append(items, fmt.Sprintf(
			"<li><a href=%q>%s</a> <time datetime=%q>%s</time></li>",
			p.Slug+".html", p.Meta.Title,
			p.Meta.Date.Format("2006-01-02"), FormatDate(p.Meta.Date)))
	}
	return strings.ReplaceAll(tpl, "{{posts}}", strings.Join(items, "\n"))
}
