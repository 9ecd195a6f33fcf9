package docs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelinks/internal/frontmatter"
)

func TestPermalink(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		rel    string
		fm     frontmatter.Fields
		want   string
	}{
		{"plain", "/blog", "post.md", frontmatter.Fields{}, "/blog/post"},
		{"nested", "/docs", "guides/intro.mdx", frontmatter.Fields{}, "/docs/guides/intro"},
		{"index collapses", "/docs", "guides/index.md", frontmatter.Fields{}, "/docs/guides"},
		{"readme collapses", "/docs", "guides/README.md", frontmatter.Fields{}, "/docs/guides"},
		{"root index", "", "index.md", frontmatter.Fields{}, "/"},
		{"absolute slug", "/blog", "2018/post.md", frontmatter.Fields{Slug: "/hello"}, "/blog/hello"},
		{"relative slug", "/blog", "2018/post.md", frontmatter.Fields{Slug: "hello"}, "/blog/2018/hello"},
		{"explicit permalink", "/blog", "post.md", frontmatter.Fields{Permalink: "custom/url", Slug: "ignored"}, "/custom/url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Permalink(tc.prefix, tc.rel, tc.fm))
		})
	}
}

func TestComputeHash(t *testing.T) {
	a := DocFile{Path: "/a.md", Permalink: "/a", Content: []byte("a")}
	b := DocFile{Path: "/b.md", Permalink: "/b", Content: []byte("b")}

	require.Equal(t, ComputeHash([]DocFile{a, b}), ComputeHash([]DocFile{b, a}))

	changed := b
	changed.Content = []byte("b2")
	require.NotEqual(t, ComputeHash([]DocFile{a, b}), ComputeHash([]DocFile{a, changed}))

	require.Len(t, ComputeHash(nil), 64)
}
