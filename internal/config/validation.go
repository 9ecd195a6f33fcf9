package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/linkify"
)

// Validate checks the configuration after defaults were applied.
func (c *Config) Validate() error {
	if c.Content.Path == "" {
		return ferrors.ValidationError("content.path is required").Build()
	}
	if err := c.TOC.Validate(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid toc window").Build()
	}
	if _, err := linkify.ParseSeverity(c.Links.OnBroken); err != nil {
		return err
	}
	if c.Build.Concurrency < 1 {
		return ferrors.ValidationError(fmt.Sprintf("build.concurrency must be at least 1, got %d", c.Build.Concurrency)).
			WithContext("concurrency", c.Build.Concurrency).
			Build()
	}
	for _, pattern := range c.Content.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return ferrors.ValidationError(fmt.Sprintf("invalid exclude pattern %q", pattern)).
				WithContext("pattern", pattern).
				Build()
		}
	}

	return c.ValidateOutput()
}

// ValidateOutput rejects an output directory that would overwrite or, with
// output.clean, remove sources: one overlapping a content root in either
// direction, or one equal to or above the site directory.
func (c *Config) ValidateOutput() error {
	out := filepath.Clean(c.OutputDir())
	if c.Output.Directory == "" {
		return ferrors.ValidationError("output.directory is required").Build()
	}
	for _, root := range c.ContentPaths().Roots() {
		if isWithin(root, out) || isWithin(out, root) {
			return ferrors.ValidationError("output.directory must not overlap the content paths").
				WithContext("output", out).
				WithContext("content", root).
				Build()
		}
	}
	if c.SiteDir != "" && isWithin(out, c.SiteDir) {
		return ferrors.ValidationError("output.directory must be inside the site directory, not contain it").
			WithContext("output", out).
			WithContext("site_dir", c.SiteDir).
			Build()
	}
	return nil
}

// isWithin reports whether path equals dir or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
