package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelinks/internal/toc"
)

func TestExtractHeadings(t *testing.T) {
	body := []byte(`# Title

Intro text.

## Getting Started

### Install *quickly*

## Getting Started

## Custom {#my-anchor}

    # not a heading (indented code)

` + "```" + `
## not a heading either
` + "```" + `
`)

	got := ExtractHeadings(body)
	require.Equal(t, []toc.Item{
		{ID: "title", Level: 1, Value: "Title"},
		{ID: "getting-started", Level: 2, Value: "Getting Started"},
		{ID: "install-quickly", Level: 3, Value: "Install quickly"},
		{ID: "getting-started-1", Level: 2, Value: "Getting Started"},
		{ID: "my-anchor", Level: 2, Value: "Custom"},
	}, got)
}

func TestExtractHeadings_NoHeadings(t *testing.T) {
	got := ExtractHeadings([]byte("Just some text.\n"))
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestExtractHeadings_FeedsTreeBuilder(t *testing.T) {
	body := []byte("## A\n\n### A.1\n\n## B\n")
	tree := toc.FilteredAndTreeified(ExtractHeadings(body), 2, 3)
	require.Len(t, tree, 2)
	require.Equal(t, "a", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	require.Equal(t, "a1", tree[0].Children[0].ID)
}
