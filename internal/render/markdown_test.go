package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_Paragraph(t *testing.T) {
	html, err := NewMarkdown().Convert([]byte("Welcome to my blog!"))
	require.NoError(t, err)
	assert.Contains(t, html, "<p>Welcome to my blog!</p>")
}

func TestMarkdown_HeadingAndEmphasis(t *testing.T) {
	html, err := NewMarkdown().Convert([]byte("# A Heading\n\nsome *emphasis* here"))
	require.NoError(t, err)
	assert.Contains(t, html, "A Heading</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
}

func TestMarkdown_GFMStrikethrough(t *testing.T) {
	html, err := NewMarkdown().Convert([]byte("~~gone~~"))
	require.NoError(t, err)
	assert.Contains(t, html, "<del>gone</del>")
}

func TestMarkdown_CodeBlock(t *testing.T) {
	html, err := NewMarkdown().Convert([]byte("```\nfmt.Println(\"hi\")\n```"))
	require.NoError(t, err)
	assert.Contains(t, html, "<pre><code>")
}
