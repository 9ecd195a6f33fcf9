package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitelinks/internal/config"
	"git.home.luguber.info/inful/sitelinks/internal/docs"
	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/linkify"
	"git.home.luguber.info/inful/sitelinks/internal/linkindex"
	"git.home.luguber.info/inful/sitelinks/internal/logfields"
	"git.home.luguber.info/inful/sitelinks/internal/metrics"
)

// Report summarizes one build pass.
type Report struct {
	BuildID        string
	Documents      int
	LinksRewritten int
	BrokenLinks    []linkify.BrokenLink
	ContentHash    string
	Outcome        metrics.BuildOutcome
	Duration       time.Duration
}

// Builder runs build passes for one configuration. Run may be called
// repeatedly but not concurrently.
type Builder struct {
	cfg      *config.Config
	fs       afero.Fs
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = metrics.OrNoop(r) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a Builder reading and writing through fs.
func NewBuilder(cfg *config.Config, fs afero.Fs, opts ...Option) *Builder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	b := &Builder{
		cfg:      cfg,
		fs:       fs,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type docResult struct {
	rewritten int
}

// Run executes one pass. With the throw policy a pass that found broken
// links returns both the report and a links error.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	if b.cfg == nil {
		return nil, ferrors.ConfigError("build requires a configuration").Build()
	}
	start := time.Now()
	report := &Report{BuildID: uuid.NewString()}
	logger := b.logger.With(logfields.BuildID(report.BuildID))

	severity, err := linkify.ParseSeverity(b.cfg.Links.OnBroken)
	if err != nil {
		return nil, err
	}

	finish := func(outcome metrics.BuildOutcome) {
		report.Outcome = outcome
		report.Duration = time.Since(start)
		b.recorder.ObserveBuildDuration(report.Duration)
		b.recorder.IncBuildOutcome(outcome)
	}

	paths := b.cfg.ContentPaths()
	files, err := docs.Discover(b.fs, docs.Options{
		ContentPaths:  paths,
		RoutePrefix:   b.cfg.Content.RoutePrefix,
		Exclude:       b.cfg.Content.Exclude,
		IncludeDrafts: b.cfg.Content.IncludeDrafts,
		Logger:        logger,
	})
	if err != nil {
		finish(metrics.BuildFailed)
		return report, ferrors.WrapError(fmt.Errorf("%w: %w", ErrDiscovery, err), ferrors.CategoryDocs, "document discovery failed").
			Fatal().
			Build()
	}
	report.Documents = len(files)
	report.ContentHash = docs.ComputeHash(files)

	index := linkindex.Build(b.cfg.SiteDir, docs.Documents(files))
	b.recorder.SetIndexSize(index.Len())

	if err := b.cfg.ValidateOutput(); err != nil {
		finish(metrics.BuildFailed)
		return report, err
	}
	out := newOutputWriter(b.fs, b.cfg.OutputDir())
	if err := out.prepare(b.cfg.Output.Clean); err != nil {
		finish(metrics.BuildFailed)
		return report, err
	}

	collector := linkify.NewCollector()
	handler := linkify.ReportingHandler(severity, logger, collector)
	linker := linkify.New(b.fs, linkify.WithRecorder(b.recorder), linkify.WithLogger(logger))

	results := runOrdered(ctx, files, b.cfg.Build.Concurrency, func(df docs.DocFile) (docResult, error) {
		docStart := time.Now()
		defer func() { b.recorder.ObserveDocumentDuration(time.Since(docStart)) }()

		if err := ctx.Err(); err != nil {
			return docResult{}, err
		}
		res, err := linker.Rewrite(linkify.Params{
			FilePath:             df.Path,
			FileString:           string(df.Content),
			SiteDir:              b.cfg.SiteDir,
			ContentPaths:         paths,
			SourceToPermalink:    index,
			OnBrokenMarkdownLink: handler,
		})
		if err != nil {
			return docResult{}, err
		}
		if err := out.writeDocument(df.RelativePath, []byte(res.Text)); err != nil {
			return docResult{}, err
		}
		if b.cfg.TOC.Sidecar {
			window := b.tocWindow(df, logger)
			if err := out.writeTOC(df.RelativePath, []byte(res.Text), window); err != nil {
				return docResult{}, err
			}
		}
		return docResult{rewritten: res.Rewritten}, nil
	})

	var firstErr error
	for i, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			if !errors.Is(r.Err, context.Canceled) && !errors.Is(r.Err, context.DeadlineExceeded) {
				logger.Error("Document failed", logfields.File(files[i].Path), logfields.Error(r.Err))
			}
			continue
		}
		report.LinksRewritten += r.Value.rewritten
	}
	report.BrokenLinks = collector.Links()

	if err := ctx.Err(); err != nil {
		finish(metrics.BuildCanceled)
		logger.Warn("Build canceled", logfields.Documents(report.Documents))
		return report, err
	}
	if firstErr != nil {
		finish(metrics.BuildFailed)
		if ferrors.IsClassified(firstErr) {
			return report, firstErr
		}
		return report, ferrors.WrapError(firstErr, ferrors.CategoryBuild, "build pass failed").Fatal().Build()
	}

	linksErr := collector.Err(severity)
	switch {
	case linksErr != nil:
		finish(metrics.BuildFailed)
	case len(report.BrokenLinks) > 0:
		finish(metrics.BuildWarning)
	default:
		finish(metrics.BuildSuccess)
	}

	logger.Info("Build completed",
		logfields.Documents(report.Documents),
		logfields.Rewritten(report.LinksRewritten),
		logfields.Broken(len(report.BrokenLinks)),
		logfields.Policy(string(severity)),
		logfields.Output(out.dir),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report, linksErr
}
