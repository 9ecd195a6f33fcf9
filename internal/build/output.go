package build

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitelinks/internal/docs"
	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/frontmatter"
	"git.home.luguber.info/inful/sitelinks/internal/logfields"
	"git.home.luguber.info/inful/sitelinks/internal/markdown"
	"git.home.luguber.info/inful/sitelinks/internal/toc"
)

// TOCSuffix is appended to a document's base name for its TOC file.
const TOCSuffix = ".toc.json"

type outputWriter struct {
	fs  afero.Fs
	dir string
}

func newOutputWriter(fs afero.Fs, dir string) *outputWriter {
	return &outputWriter{fs: fs, dir: dir}
}

func (w *outputWriter) prepare(clean bool) error {
	if clean {
		if err := w.fs.RemoveAll(w.dir); err != nil {
			return w.fail(err, "failed to clean output directory", w.dir)
		}
	}
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return w.fail(err, "failed to create output directory", w.dir)
	}
	return nil
}

func (w *outputWriter) writeDocument(rel string, data []byte) error {
	return w.write(filepath.Join(w.dir, rel), data)
}

// writeTOC writes the heading tree of content, limited to window, next to
// the document.
func (w *outputWriter) writeTOC(rel string, content []byte, window toc.Window) error {
	_, body, _, err := frontmatter.Split(content)
	if err != nil {
		body = content
	}
	nodes := window.Apply(markdown.ExtractHeadings(body))

	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode toc").Build()
	}
	name := strings.TrimSuffix(rel, filepath.Ext(rel)) + TOCSuffix
	return w.write(filepath.Join(w.dir, name), append(data, '\n'))
}

func (w *outputWriter) write(path string, data []byte) error {
	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return w.fail(err, "failed to create output directory", filepath.Dir(path))
	}
	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return w.fail(err, "failed to write output file", path)
	}
	return nil
}

func (w *outputWriter) fail(err error, msg, path string) error {
	return ferrors.WrapError(fmt.Errorf("%w: %w", ErrOutput, err), ferrors.CategoryFileSystem, msg).
		WithContext("path", path).
		Build()
}

// tocWindow applies the document's front matter override to the configured
// window, falling back to the configured window when the result is invalid.
func (b *Builder) tocWindow(df docs.DocFile, logger *slog.Logger) toc.Window {
	window := b.cfg.TOC.Window.Override(df.Front.TOCWindow())
	if err := window.Validate(); err != nil {
		logger.Warn("Ignoring invalid toc heading levels", logfields.File(df.Path), logfields.Error(err))
		return b.cfg.TOC.Window
	}
	return window
}
