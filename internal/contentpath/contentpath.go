package contentpath

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Paths holds the content roots of one locale.
type Paths struct {
	ContentPath          string `json:"contentPath" yaml:"content_path"`
	ContentPathLocalized string `json:"contentPathLocalized" yaml:"content_path_localized"`
}

// Roots returns the candidate roots in priority order: localized first.
// Empty and duplicate roots are dropped.
func (p Paths) Roots() []string {
	roots := make([]string, 0, 2)
	for _, r := range []string{p.ContentPathLocalized, p.ContentPath} {
		if r == "" {
			continue
		}
		r = filepath.Clean(r)
		if !containsString(roots, r) {
			roots = append(roots, r)
		}
	}
	return roots
}

// RootFor returns the root containing path and path relative to it.
func (p Paths) RootFor(path string) (root, rel string, ok bool) {
	for _, r := range p.Roots() {
		if rel, ok := within(r, path); ok {
			return r, rel, true
		}
	}
	return "", "", false
}

// Resolver maps link file parts to existing files.
type Resolver struct {
	fs    afero.Fs
	paths Paths
}

// NewResolver returns a Resolver checking existence on fs.
func NewResolver(fs afero.Fs, paths Paths) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs, paths: paths}
}

// Paths returns the roots the resolver was built with.
func (r *Resolver) Paths() Paths { return r.paths }

// Resolve returns the first existing candidate for filePart as referenced
// from the document at filePath. filePart must already be fragment-free and
// percent-decoded.
func (r *Resolver) Resolve(filePath, filePart string) (string, bool) {
	for _, candidate := range r.Candidates(filePath, filePart) {
		if r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Candidates lists the paths Resolve tries, in order.
//
// A document under a content root resolves against the same relative
// directory in every root, localized first, then against each root itself.
// Candidates escaping every root are dropped. A document outside every root
// additionally tries its own directory first.
func (r *Resolver) Candidates(filePath, filePart string) []string {
	if filePart == "" {
		return nil
	}
	part := filepath.FromSlash(filePart)
	roots := r.paths.Roots()
	out := make([]string, 0, 1+2*len(roots))

	if !strings.HasPrefix(filePart, "/") {
		docDir := filepath.Dir(filePath)
		if _, relDir, ok := r.paths.RootFor(docDir); ok {
			for _, root := range roots {
				out = r.appendWithinRoots(out, filepath.Join(root, relDir, part))
			}
		} else {
			out = appendUnique(out, filepath.Join(docDir, part))
		}
	}

	for _, root := range roots {
		out = r.appendWithinRoots(out, filepath.Join(root, part))
	}
	return out
}

func (r *Resolver) appendWithinRoots(list []string, path string) []string {
	if _, _, ok := r.paths.RootFor(path); !ok {
		return list
	}
	return appendUnique(list, path)
}

func (r *Resolver) isFile(path string) bool {
	fi, err := r.fs.Stat(path)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

func within(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, filepath.Clean(path))
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func appendUnique(list []string, path string) []string {
	path = filepath.Clean(path)
	if containsString(list, path) {
		return list
	}
	return append(list, path)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
