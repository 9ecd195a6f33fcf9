// Package linkify rewrites relative markdown links between documents into
// their published permalinks.
//
// Links that cannot be resolved are reported through a BrokenLinkHandler and
// left untouched. Processing never stops at a broken link unless the handler
// returns an error.
package linkify

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitelinks/internal/contentpath"
	"git.home.luguber.info/inful/sitelinks/internal/linkindex"
	"git.home.luguber.info/inful/sitelinks/internal/logfields"
	"git.home.luguber.info/inful/sitelinks/internal/markdown"
	"git.home.luguber.info/inful/sitelinks/internal/metrics"
)

// BrokenLink describes one unresolvable link occurrence.
type BrokenLink struct {
	FilePath     string            `json:"filePath"`
	ContentPaths contentpath.Paths `json:"contentPaths"`
	// Link is the target exactly as written, fragment included.
	Link string `json:"link"`
	Line int    `json:"line"`
}

// BrokenLinkHandler receives broken links synchronously, in document order.
// A non-nil error aborts Linkify and is returned to its caller unchanged.
type BrokenLinkHandler func(BrokenLink) error

// Params are the inputs of a single document rewrite.
type Params struct {
	FilePath             string
	FileString           string
	SiteDir              string
	ContentPaths         contentpath.Paths
	SourceToPermalink    *linkindex.Index
	OnBrokenMarkdownLink BrokenLinkHandler
}

// Result is the rewritten text with per-document counts.
type Result struct {
	Text      string
	Rewritten int
	Broken    int
}

// Linkifier rewrites document links. It holds no per-document state and may
// be shared between goroutines.
type Linkifier struct {
	fs       afero.Fs
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Linkifier.
type Option func(*Linkifier)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Linkifier) { l.recorder = metrics.OrNoop(r) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linkifier) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns a Linkifier that checks link targets on fs.
func New(fs afero.Fs, opts ...Option) *Linkifier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	l := &Linkifier{
		fs:       fs,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Linkify rewrites p.FileString using the OS filesystem.
func Linkify(p Params) (string, error) {
	return New(afero.NewOsFs()).Linkify(p)
}

// Linkify returns p.FileString with every resolvable document link replaced
// by its permalink.
func (l *Linkifier) Linkify(p Params) (string, error) {
	res, err := l.Rewrite(p)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Rewrite is Linkify with rewrite and broken counts.
func (l *Linkifier) Rewrite(p Params) (Result, error) {
	src := []byte(p.FileString)
	resolver := contentpath.NewResolver(l.fs, p.ContentPaths)
	res := Result{Text: p.FileString}

	var edits []markdown.Edit
	for _, span := range markdown.ScanLinks(src) {
		filePart, ok := documentPart(span.Destination)
		if !ok {
			l.recorder.IncLinkResult(metrics.LinkSkipped)
			continue
		}

		permalink, result := l.resolve(resolver, p, filePart)
		l.recorder.IncLinkResult(result)
		if result != metrics.LinkRewritten {
			res.Broken++
			if p.OnBrokenMarkdownLink == nil {
				continue
			}
			if err := p.OnBrokenMarkdownLink(BrokenLink{
				FilePath:     p.FilePath,
				ContentPaths: p.ContentPaths,
				Link:         span.Destination,
				Line:         span.Line,
			}); err != nil {
				return Result{}, err
			}
			continue
		}

		l.logger.Debug("Rewrote markdown link",
			logfields.File(p.FilePath),
			logfields.Link(span.Destination),
			logfields.Permalink(permalink),
			logfields.Line(span.Line))
		edits = append(edits, markdown.Edit{
			Start:       span.Start,
			End:         span.Start + len(filePart),
			Replacement: []byte(permalink),
		})
	}

	if len(edits) == 0 {
		return res, nil
	}
	out, err := markdown.ApplyEdits(src, edits)
	if err != nil {
		return Result{}, err
	}
	res.Text = string(out)
	res.Rewritten = len(edits)
	return res, nil
}

func (l *Linkifier) resolve(r *contentpath.Resolver, p Params, filePart string) (string, metrics.LinkResult) {
	decoded, err := url.PathUnescape(filePart)
	if err != nil {
		decoded = filePart
	}
	resolved, ok := r.Resolve(p.FilePath, decoded)
	if !ok {
		return "", metrics.LinkBroken
	}
	permalink, ok := p.SourceToPermalink.Lookup(linkindex.SourceKey(p.SiteDir, resolved))
	if !ok {
		return "", metrics.LinkUnregistered
	}
	return permalink, metrics.LinkRewritten
}

// documentPart returns the fragment-free file part of dest when dest refers
// to a local .md or .mdx document.
func documentPart(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "//") || hasScheme(dest) {
		return "", false
	}
	filePart := dest
	if i := strings.IndexByte(filePart, '#'); i >= 0 {
		filePart = filePart[:i]
	}
	lower := strings.ToLower(filePart)
	if !strings.HasSuffix(lower, ".md") && !strings.HasSuffix(lower, ".mdx") {
		return "", false
	}
	return filePart, true
}

// hasScheme reports whether s starts with an RFC 3986 scheme followed by ':'.
func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case c == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}
