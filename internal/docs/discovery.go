package docs

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitelinks/internal/contentpath"
	derrors "git.home.luguber.info/inful/sitelinks/internal/docs/errors"
	"git.home.luguber.info/inful/sitelinks/internal/frontmatter"
	"git.home.luguber.info/inful/sitelinks/internal/linkindex"
	"git.home.luguber.info/inful/sitelinks/internal/logfields"
)

// Options control which documents are discovered and how their permalinks
// are derived.
type Options struct {
	ContentPaths contentpath.Paths
	// RoutePrefix is prepended to every derived permalink, e.g. "/blog".
	RoutePrefix string
	// Exclude holds path.Match patterns tested against the slash separated
	// path relative to the content root and against the file name.
	Exclude       []string
	IncludeDrafts bool
	Logger        *slog.Logger
}

// DocFile represents a discovered markdown document.
type DocFile struct {
	Path         string             // Absolute path to the file
	Root         string             // Content root the file was found under
	RelativePath string             // Path relative to Root
	Localized    bool               // True when Root is the localized content path
	Permalink    string             // Published URL path
	Front        frontmatter.Fields // Typed front matter
	Metadata     map[string]any     // Raw front matter
	Content      []byte             // Full file content, front matter included
}

// Document returns the link index entry for df.
func (df DocFile) Document() linkindex.Document {
	return linkindex.Document{
		SourcePath: df.Path,
		Permalink:  df.Permalink,
		Metadata:   df.Metadata,
	}
}

// Documents converts files into link index entries.
func Documents(files []DocFile) []linkindex.Document {
	out := make([]linkindex.Document, 0, len(files))
	for _, f := range files {
		out = append(out, f.Document())
	}
	return out
}

// Discover walks the content roots of opts on fs. A localized document
// shadows the base document with the same relative path. Results are sorted
// by relative path.
func Discover(fs afero.Fs, opts Options) ([]DocFile, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, pattern := range opts.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", derrors.ErrInvalidExcludePattern, pattern, err)
		}
	}

	roots := opts.ContentPaths.Roots()
	if len(roots) == 0 {
		return nil, derrors.ErrNoContentRoots
	}
	localizedRoot := ""
	if opts.ContentPaths.ContentPathLocalized != "" {
		localizedRoot = filepath.Clean(opts.ContentPaths.ContentPathLocalized)
	}

	seen := make(map[string]struct{})
	var files []DocFile
	for _, root := range roots {
		exists, err := afero.DirExists(fs, root)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, root, err)
		}
		if !exists {
			logger.Debug("Content root not found", logfields.Path(root))
			continue
		}

		found, err := walkRoot(fs, root, opts)
		if err != nil {
			return nil, err
		}
		for _, df := range found {
			key := filepath.ToSlash(df.RelativePath)
			if _, shadowed := seen[key]; shadowed {
				logger.Debug("Document shadowed by localized copy", logfields.File(df.Path))
				continue
			}
			seen[key] = struct{}{}
			df.Localized = root == localizedRoot
			files = append(files, df)
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})
	logger.Info("Documents discovered", logfields.Documents(len(files)))
	return files, nil
}

func walkRoot(fs afero.Fs, root string, opts Options) ([]DocFile, error) {
	var files []DocFile

	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := info.Name()
		if p != root && strings.HasPrefix(name, ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !isMarkdownFile(name) || strings.HasPrefix(name, "_") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if excluded(opts.Exclude, filepath.ToSlash(rel), name) {
			return nil
		}

		df, err := load(fs, root, p, rel)
		if err != nil {
			return err
		}
		if df.Front.Draft && !opts.IncludeDrafts {
			return nil
		}
		df.Permalink = Permalink(opts.RoutePrefix, df.RelativePath, df.Front)
		files = append(files, df)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, root, err)
	}
	return files, nil
}

func load(fs afero.Fs, root, p, rel string) (DocFile, error) {
	content, err := afero.ReadFile(fs, p)
	if err != nil {
		return DocFile{}, fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, p, err)
	}

	df := DocFile{
		Path:         p,
		Root:         root,
		RelativePath: rel,
		Content:      content,
	}

	raw, _, had, err := frontmatter.Split(content)
	if err != nil {
		return DocFile{}, fmt.Errorf("%w: %s: %w", derrors.ErrInvalidFrontMatter, p, err)
	}
	if !had {
		return df, nil
	}
	if df.Metadata, err = frontmatter.ParseYAML(raw); err != nil {
		return DocFile{}, fmt.Errorf("%w: %s: %w", derrors.ErrInvalidFrontMatter, p, err)
	}
	if df.Front, err = frontmatter.Decode(raw); err != nil {
		return DocFile{}, fmt.Errorf("%w: %s: %w", derrors.ErrInvalidFrontMatter, p, err)
	}
	return df, nil
}

// isMarkdownFile checks if a file is a document the linkifier handles.
func isMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".mdx"
}

func excluded(patterns []string, rel, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
