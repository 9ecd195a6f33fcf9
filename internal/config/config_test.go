package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/toc"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	require.Equal(t, DefaultSiteDir, cfg.SiteDir)
	require.Equal(t, DefaultContentPath, cfg.Content.Path)
	require.Equal(t, toc.DefaultWindow(), cfg.TOC.Window)
	require.Equal(t, DefaultOnBroken, cfg.Links.OnBroken)
	require.Equal(t, DefaultConcurrency, cfg.Build.Concurrency)
	require.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	require.NoError(t, cfg.Validate())
}

func TestParse_PartialTOCOverride(t *testing.T) {
	cfg, err := Parse([]byte("toc:\n  max_heading_level: 5\n  sidecar: true\n"))
	require.NoError(t, err)
	require.Equal(t, toc.Window{Min: 2, Max: 5}, cfg.TOC.Window)
	require.True(t, cfg.TOC.Sidecar)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse([]byte("contnet:\n  path: blog\n"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SITELINKS_TEST_OUT", "public")
	cfg, err := Parse([]byte("output:\n  directory: ${SITELINKS_TEST_OUT}\n"))
	require.NoError(t, err)
	require.Equal(t, "public", cfg.Output.Directory)
}

func TestLoad_ResolvesPathsAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
site_dir: website
content:
  path: blog-with-ref
  localized_path: i18n/fr/blog-with-ref
  route_prefix: /blog
links:
  on_broken: throw
metrics:
  textfile: metrics/sitelinks.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	site := filepath.Join(dir, "website")
	require.Equal(t, site, cfg.SiteDir)
	paths := cfg.ContentPaths()
	require.Equal(t, filepath.Join(site, "blog-with-ref"), paths.ContentPath)
	require.Equal(t, filepath.Join(site, "i18n/fr/blog-with-ref"), paths.ContentPathLocalized)
	require.Equal(t, filepath.Join(site, "build"), cfg.OutputDir())
	require.Equal(t, filepath.Join(site, "metrics/sitelinks.prom"), cfg.Metrics.Textfile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"severity":                  "links:\n  on_broken: explode\n",
		"concurrency":               "build:\n  concurrency: -1\n",
		"toc window":                "toc:\n  min_heading_level: 4\n  max_heading_level: 2\n",
		"exclude":                   "content:\n  exclude: ['[']\n",
		"output":                    "content:\n  path: out\noutput:\n  directory: out\n",
		"output is site dir":        "output:\n  directory: .\n  clean: true\n",
		"output above site dir":     "output:\n  directory: ..\n",
		"output inside content":     "output:\n  directory: blog/out\n",
		"output contains content":   "content:\n  path: docs/blog\noutput:\n  directory: docs\n",
		"output contains localized": "content:\n  localized_path: i18n/fr/blog\noutput:\n  directory: i18n\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), content))
			require.Error(t, err)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation), err.Error())
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/blog", cfg.Content.RoutePrefix)
	require.True(t, cfg.TOC.Sidecar)

	err = Init(path, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true))
}

func TestLoadEnvFiles_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	base := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("SITELINKS_A=local\n"), 0o644))
	require.NoError(t, os.WriteFile(base, []byte("SITELINKS_A=base\nSITELINKS_B=base\n"), 0o644))

	t.Setenv("SITELINKS_A", "")
	t.Setenv("SITELINKS_B", "")
	require.NoError(t, os.Unsetenv("SITELINKS_A"))
	require.NoError(t, os.Unsetenv("SITELINKS_B"))

	require.NoError(t, loadEnvFiles(local, base, filepath.Join(dir, "missing")))
	require.Equal(t, "local", os.Getenv("SITELINKS_A"))
	require.Equal(t, "base", os.Getenv("SITELINKS_B"))
}
