package linkify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/foundation/normalization"
	"git.home.luguber.info/inful/sitelinks/internal/logfields"
)

// Severity selects what a build does with broken links.
type Severity string

const (
	SeverityIgnore Severity = "ignore"
	SeverityLog    Severity = "log"
	SeverityWarn   Severity = "warn"
	SeverityThrow  Severity = "throw"
)

// Severities lists the accepted values in increasing strictness.
func Severities() []Severity {
	return []Severity{SeverityIgnore, SeverityLog, SeverityWarn, SeverityThrow}
}

var severityNames = normalization.NewNormalizer(map[string]Severity{
	string(SeverityIgnore): SeverityIgnore,
	string(SeverityLog):    SeverityLog,
	string(SeverityWarn):   SeverityWarn,
	string(SeverityThrow):  SeverityThrow,
})

// ParseSeverity validates s. Case and surrounding whitespace are ignored.
func ParseSeverity(s string) (Severity, error) {
	sev, err := severityNames.Normalize(s)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryValidation, "invalid broken link severity").
			Fatal().
			WithContext("allowed", Severities()).
			Build()
	}
	return sev, nil
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityIgnore:
		return slog.LevelDebug
	case SeverityLog:
		return slog.LevelInfo
	case SeverityThrow:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Collector aggregates broken links across documents. Safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	links []BrokenLink
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Handler returns a BrokenLinkHandler appending to c.
func (c *Collector) Handler() BrokenLinkHandler {
	return func(bl BrokenLink) error {
		c.add(bl)
		return nil
	}
}

func (c *Collector) add(bl BrokenLink) {
	c.mu.Lock()
	c.links = append(c.links, bl)
	c.mu.Unlock()
}

// Links returns the collected links grouped by file. Links of the same file
// keep document order.
func (c *Collector) Links() []BrokenLink {
	c.mu.Lock()
	out := make([]BrokenLink, len(c.links))
	copy(out, c.links)
	c.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return out
}

// Len returns the number of collected links.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.links)
}

// Err returns a links error listing every collected link when sev is throw.
func (c *Collector) Err(sev Severity) error {
	if sev != SeverityThrow {
		return nil
	}
	links := c.Links()
	if len(links) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d broken markdown link(s)", len(links))
	for _, bl := range links {
		fmt.Fprintf(&b, "\n  %s:%d: %s", bl.FilePath, bl.Line, bl.Link)
	}
	return errors.LinksError(b.String()).
		WithContext("broken", len(links)).
		Build()
}

// ReportingHandler collects every broken link into c and logs it at the level
// implied by sev. It never returns an error; use Collector.Err once the whole
// batch has been processed.
func ReportingHandler(sev Severity, logger *slog.Logger, c *Collector) BrokenLinkHandler {
	if logger == nil {
		logger = slog.Default()
	}
	level := sev.level()
	return func(bl BrokenLink) error {
		if c != nil {
			c.add(bl)
		}
		logger.Log(context.Background(), level, "Broken markdown link",
			logfields.File(bl.FilePath),
			logfields.Line(bl.Line),
			logfields.Link(bl.Link),
			logfields.Policy(string(sev)))
		return nil
	}
}
