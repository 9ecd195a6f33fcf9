package docs

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelinks/internal/contentpath"
	derrors "git.home.luguber.info/inful/sitelinks/internal/docs/errors"
)

const (
	baseRoot      = "/site/blog"
	localizedRoot = "/site/i18n/fr/blog"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
}

func relPaths(files []DocFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelativePath)
	}
	return out
}

func TestDiscover_CollectsMarkdownAndSkipsIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		baseRoot + "/index.md":                  "# Index\n",
		baseRoot + "/api/overview.mdx":          "# API\n",
		baseRoot + "/guides/getting-started.md": "# Start\n",
		baseRoot + "/_partial.md":               "partial\n",
		baseRoot + "/.hidden/secret.md":         "# hidden\n",
		baseRoot + "/.notes.md":                 "# hidden\n",
		baseRoot + "/image.png":                 "png",
		baseRoot + "/drafts/wip.md":             "---\ndraft: true\n---\n# WIP\n",
		baseRoot + "/old/legacy.md":             "# legacy\n",
	})

	files, err := Discover(fs, Options{
		ContentPaths: contentpath.Paths{ContentPath: baseRoot},
		Exclude:      []string{"old/*"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"api/overview.mdx", "guides/getting-started.md", "index.md"}, relPaths(files))
}

func TestDiscover_IncludeDrafts(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		baseRoot + "/wip.md": "---\ndraft: true\n---\n# WIP\n",
	})

	files, err := Discover(fs, Options{
		ContentPaths:  contentpath.Paths{ContentPath: baseRoot},
		IncludeDrafts: true,
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.True(t, files[0].Front.Draft)
}

func TestDiscover_LocalizedShadowsBase(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		baseRoot + "/a.md":      "# A base\n",
		baseRoot + "/b.md":      "# B base\n",
		localizedRoot + "/a.md": "# A fr\n",
	})

	files, err := Discover(fs, Options{
		ContentPaths: contentpath.Paths{ContentPath: baseRoot, ContentPathLocalized: localizedRoot},
		RoutePrefix:  "/fr/blog",
	})
	require.NoError(t, err)
	require.Len(t, files, 2)

	require.Equal(t, localizedRoot+"/a.md", files[0].Path)
	require.True(t, files[0].Localized)
	require.Equal(t, "/fr/blog/a", files[0].Permalink)

	require.Equal(t, baseRoot+"/b.md", files[1].Path)
	require.False(t, files[1].Localized)
}

func TestDiscover_FrontMatter(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		baseRoot + "/2018-12-14-Happy-First-Birthday-Slash.md": "---\ntitle: Happy 1st Birthday Slash!\nslug: /2018/12/14/Happy-First-Birthday-Slash\ntags: [birthday]\n---\nBody\n",
	})

	files, err := Discover(fs, Options{
		ContentPaths: contentpath.Paths{ContentPath: baseRoot},
		RoutePrefix:  "/blog",
	})
	require.NoError(t, err)
	require.Len(t, files, 1)

	df := files[0]
	require.Equal(t, "/blog/2018/12/14/Happy-First-Birthday-Slash", df.Permalink)
	require.Equal(t, "Happy 1st Birthday Slash!", df.Front.Title)
	require.Equal(t, []any{"birthday"}, df.Metadata["tags"])

	doc := df.Document()
	require.Equal(t, df.Path, doc.SourcePath)
	require.Equal(t, df.Permalink, doc.Permalink)
	require.Len(t, Documents(files), 1)
}

func TestDiscover_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Discover(fs, Options{})
	require.True(t, errors.Is(err, derrors.ErrNoContentRoots))

	_, err = Discover(fs, Options{ContentPaths: contentpath.Paths{ContentPath: baseRoot}, Exclude: []string{"["}})
	require.True(t, errors.Is(err, derrors.ErrInvalidExcludePattern))

	writeFiles(t, fs, map[string]string{baseRoot + "/bad.md": "---\ntitle: [oops\n---\n"})
	_, err = Discover(fs, Options{ContentPaths: contentpath.Paths{ContentPath: baseRoot}})
	require.True(t, errors.Is(err, derrors.ErrInvalidFrontMatter))
	require.True(t, errors.Is(err, derrors.ErrDocsDirWalkFailed))
}

func TestDiscover_MissingRootIsEmpty(t *testing.T) {
	files, err := Discover(afero.NewMemMapFs(), Options{ContentPaths: contentpath.Paths{ContentPath: "/nowhere"}})
	require.NoError(t, err)
	require.Empty(t, files)
}
