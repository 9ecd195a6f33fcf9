package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitelinks/internal/config"
	"git.home.luguber.info/inful/sitelinks/internal/docs"
	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/linkify"
	"git.home.luguber.info/inful/sitelinks/internal/linkindex"
)

// LinkifyCmd implements the 'linkify' command.
type LinkifyCmd struct {
	File     string `arg:"" type:"existingfile" help:"Markdown document to rewrite"`
	OnBroken string `name:"on-broken" help:"Override links.on_broken (ignore|log|warn|throw)"`
}

func (l *LinkifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if l.OnBroken != "" {
		cfg.Links.OnBroken = l.OnBroken
	}
	severity, err := linkify.ParseSeverity(cfg.Links.OnBroken)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	files, err := docs.Discover(fs, docs.Options{
		ContentPaths:  cfg.ContentPaths(),
		RoutePrefix:   cfg.Content.RoutePrefix,
		Exclude:       cfg.Content.Exclude,
		IncludeDrafts: cfg.Content.IncludeDrafts,
	})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryDocs, "document discovery failed").Fatal().Build()
	}

	path, err := filepath.Abs(l.File)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve document path").Build()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read document").
			WithContext("path", path).
			Build()
	}

	collector := linkify.NewCollector()
	out, err := linkify.New(fs).Linkify(linkify.Params{
		FilePath:             path,
		FileString:           string(content),
		SiteDir:              cfg.SiteDir,
		ContentPaths:         cfg.ContentPaths(),
		SourceToPermalink:    linkindex.Build(cfg.SiteDir, docs.Documents(files)),
		OnBrokenMarkdownLink: linkify.ReportingHandler(severity, slog.Default(), collector),
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(g.stdout(), out); err != nil {
		return err
	}
	return collector.Err(severity)
}
