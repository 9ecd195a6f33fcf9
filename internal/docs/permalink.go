package docs

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitelinks/internal/frontmatter"
)

// Permalink derives the published URL path of a document.
//
// An explicit permalink wins and is used verbatim. A slug starting with "/"
// is taken relative to the route prefix; any other slug replaces the file
// name within the document's directory. Without either, the relative path
// minus its extension is used, and index or README files stand for their
// directory.
func Permalink(routePrefix, relPath string, fm frontmatter.Fields) string {
	if fm.Permalink != "" {
		return ensureLeadingSlash(fm.Permalink)
	}

	rel := filepath.ToSlash(relPath)
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}

	var p string
	switch {
	case strings.HasPrefix(fm.Slug, "/"):
		p = path.Join("/", routePrefix, fm.Slug)
	case fm.Slug != "":
		p = path.Join("/", routePrefix, dir, fm.Slug)
	default:
		name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
		if strings.EqualFold(name, "index") || strings.EqualFold(name, "readme") {
			name = ""
		}
		p = path.Join("/", routePrefix, dir, name)
	}
	return p
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
