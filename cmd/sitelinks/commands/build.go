package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitelinks/internal/build"
	"git.home.luguber.info/inful/sitelinks/internal/config"
	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/logfields"
	"git.home.luguber.info/inful/sitelinks/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Override output.directory (relative to the working directory)"`
	Watch       bool   `short:"w" help:"Rebuild when documents change"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile after each build"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if b.Output != "" {
		out, err := filepath.Abs(b.Output)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve output directory").Build()
		}
		cfg.Output.Directory = out
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sink := newMetricsSink(b.MetricsFile, cfg)
	builder := build.NewBuilder(cfg, afero.NewOsFs(),
		build.WithRecorder(sink.recorder),
		build.WithLogger(slog.Default()))

	runOnce := func(ctx context.Context) error {
		report, err := builder.Run(ctx)
		sink.flush()
		if report != nil {
			printReport(g, report)
		}
		return err
	}

	if !b.Watch {
		return runOnce(ctx)
	}

	if err := runOnce(ctx); err != nil {
		slog.Warn("Initial build failed; watching for changes", logfields.Error(err))
	}
	w := watch.New(cfg.ContentPaths().Roots(), runOnce,
		watch.WithIgnoreDir(cfg.OutputDir()),
		watch.WithLogger(slog.Default()))
	return w.Run(ctx)
}

func printReport(g *Global, r *build.Report) {
	_, _ = fmt.Fprintf(g.stdout(), "build %s: %d documents, %d links rewritten, %d broken (%s, %s)\n",
		r.BuildID, r.Documents, r.LinksRewritten, len(r.BrokenLinks), r.Outcome, r.Duration.Round(time.Millisecond))
}
