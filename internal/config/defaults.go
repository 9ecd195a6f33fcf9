package config

import "git.home.luguber.info/inful/sitelinks/internal/toc"

const (
	DefaultSiteDir     = "."
	DefaultContentPath = "blog"
	DefaultOnBroken    = "warn"
	DefaultConcurrency = 4
	DefaultOutputDir   = "build"
)

func (c *Config) applyDefaults() {
	if c.SiteDir == "" {
		c.SiteDir = DefaultSiteDir
	}
	if c.Content.Path == "" {
		c.Content.Path = DefaultContentPath
	}
	c.TOC.Window = toc.DefaultWindow().Override(c.TOC.Window)
	if c.Links.OnBroken == "" {
		c.Links.OnBroken = DefaultOnBroken
	}
	if c.Build.Concurrency == 0 {
		c.Build.Concurrency = DefaultConcurrency
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
}
