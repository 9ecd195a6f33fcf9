package linkindex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceKey(t *testing.T) {
	cases := []struct {
		name    string
		siteDir string
		path    string
		want    string
	}{
		{"under site", "/site", "/site/blog/post.md", "@site/blog/post.md"},
		{"relative to site", "/site", "blog/post.md", "@site/blog/post.md"},
		{"unclean", "/site/", "/site/blog/../blog/./post.md", "@site/blog/post.md"},
		{"already aliased", "/site", "@site/blog//post.md", "@site/blog/post.md"},
		{"outside site", "/site", "/elsewhere/post.md", "/elsewhere/post.md"},
		{"no site dir", "", "/a/b/../c.md", "/a/c.md"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SourceKey(tc.siteDir, tc.path))
		})
	}
}

func TestSourceKey_NFC(t *testing.T) {
	nfd := "/site/blog/cafe\u0301.md"
	nfc := "/site/blog/caf\u00e9.md"
	require.NotEqual(t, nfc, nfd)
	require.Equal(t, SourceKey("/site", nfc), SourceKey("/site", nfd))
}

func TestBuild_LookupByAbsoluteOrAlias(t *testing.T) {
	idx := Build("/site", []Document{
		{SourcePath: "@site/blog/2018-12-14-Happy-First-Birthday-Slash.md", Permalink: "/blog/2018/12/14/Happy-First-Birthday-Slash"},
		{SourcePath: "/site/blog/other.md", Permalink: "/blog/other"},
	})

	require.Equal(t, 2, idx.Len())

	got, ok := idx.Lookup("/site/blog/2018-12-14-Happy-First-Birthday-Slash.md")
	require.True(t, ok)
	require.Equal(t, "/blog/2018/12/14/Happy-First-Birthday-Slash", got)

	got, ok = idx.Lookup("@site/blog/other.md")
	require.True(t, ok)
	require.Equal(t, "/blog/other", got)

	_, ok = idx.Lookup("/site/blog/missing.md")
	require.False(t, ok)
}

func TestBuild_LastWriteWins(t *testing.T) {
	idx := Build("/site", []Document{
		{SourcePath: "/site/docs/a.md", Permalink: "/first"},
		{SourcePath: "@site/docs/a.md", Permalink: "/second"},
	})
	require.Equal(t, 1, idx.Len())
	got, _ := idx.Lookup("/site/docs/a.md")
	require.Equal(t, "/second", got)
}

func TestMap_ReturnsCopy(t *testing.T) {
	idx := Build("/site", []Document{{SourcePath: "/site/a.md", Permalink: "/a"}})
	m := idx.Map()
	m["@site/a.md"] = "/changed"
	got, _ := idx.Lookup("/site/a.md")
	require.Equal(t, "/a", got)
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	_, ok := idx.Lookup("/x.md")
	require.False(t, ok)
	require.Zero(t, idx.Len())
	require.Empty(t, idx.Map())
}

func TestConcurrentLookups(t *testing.T) {
	idx := Build("/site", []Document{{SourcePath: "/site/a.md", Permalink: "/a"}})
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				got, ok := idx.Lookup("/site/a.md")
				if !ok || got != "/a" {
					t.Error("unexpected lookup result")
				}
			}
		}()
	}
	wg.Wait()
}
