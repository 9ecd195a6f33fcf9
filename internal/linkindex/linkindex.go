// Package linkindex maps document source paths to their published permalinks.
package linkindex

import (
	"maps"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SiteAlias prefixes source keys of files below the site directory.
const SiteAlias = "@site"

// Document is the part of a published document the index needs. Metadata is
// carried along untouched.
type Document struct {
	SourcePath string         `json:"sourcePath" yaml:"source_path"`
	Permalink  string         `json:"permalink" yaml:"permalink"`
	Metadata   map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Index is read-only after Build and safe for concurrent lookups.
type Index struct {
	siteDir string
	entries map[string]string
}

// Build indexes docs by source key. A repeated key keeps the later document.
func Build(siteDir string, docs []Document) *Index {
	idx := &Index{
		siteDir: siteDir,
		entries: make(map[string]string, len(docs)),
	}
	for _, d := range docs {
		idx.entries[SourceKey(siteDir, d.SourcePath)] = d.Permalink
	}
	return idx
}

// Lookup returns the permalink registered for p, which may be an absolute
// path or an already aliased key.
func (i *Index) Lookup(p string) (string, bool) {
	if i == nil {
		return "", false
	}
	permalink, ok := i.entries[SourceKey(i.siteDir, p)]
	return permalink, ok
}

// Len returns the number of distinct keys.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Map returns a copy of the key to permalink mapping.
func (i *Index) Map() map[string]string {
	if i == nil {
		return map[string]string{}
	}
	return maps.Clone(i.entries)
}

// SourceKey normalizes p into an index key. Paths below siteDir become
// "@site/<relative path>" with forward slashes; everything else is cleaned.
// Keys are NFC normalized.
func SourceKey(siteDir, p string) string {
	var key string
	switch {
	case p == SiteAlias || strings.HasPrefix(p, SiteAlias+"/"):
		key = SiteAlias + path.Clean("/"+strings.TrimPrefix(p, SiteAlias))
	case siteDir != "":
		if rel, ok := relativeTo(siteDir, p); ok {
			key = SiteAlias + "/" + filepath.ToSlash(rel)
			break
		}
		key = filepath.ToSlash(filepath.Clean(p))
	default:
		key = filepath.ToSlash(filepath.Clean(p))
	}
	return norm.NFC.String(key)
}

func relativeTo(root, p string) (string, bool) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(p))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
