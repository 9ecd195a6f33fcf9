package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitelinks/internal/config"
	"git.home.luguber.info/inful/sitelinks/internal/logfields"
	"git.home.luguber.info/inful/sitelinks/internal/metrics"
)

// Global carries state shared by all subcommands.
type Global struct {
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitelinks.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Rewrite links of every document and write them to the output directory"`
	Linkify LinkifyCmd `cmd:"" help:"Rewrite the links of a single document and print it"`
	TOC     TOCCmd     `cmd:"" name:"toc" help:"Print the table of contents of a document"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// metricsSink owns the Prometheus registry of one CLI invocation.
type metricsSink struct {
	path     string
	registry *prom.Registry
	recorder metrics.Recorder
}

// newMetricsSink returns a Prometheus backed sink when a textfile path is
// configured, and a no-op sink otherwise. flagPath wins over the config.
func newMetricsSink(flagPath string, cfg *config.Config) *metricsSink {
	path := flagPath
	if path == "" && cfg != nil {
		path = cfg.Metrics.Textfile
	}
	if path == "" {
		return &metricsSink{recorder: metrics.NoopRecorder{}}
	}
	reg := prom.NewRegistry()
	return &metricsSink{
		path:     path,
		registry: reg,
		recorder: metrics.NewPrometheusRecorder(reg),
	}
}

func (m *metricsSink) flush() {
	if m.registry == nil {
		return
	}
	if err := metrics.WriteTextfile(m.path, m.registry); err != nil {
		slog.Warn("Failed to write metrics", logfields.Error(err))
	}
}
