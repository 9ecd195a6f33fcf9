package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitelinks/internal/contentpath"
	ferrors "git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/toc"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "sitelinks.yaml"

// Config represents the application configuration.
type Config struct {
	// SiteDir is the site root; relative paths elsewhere resolve against it.
	// A relative SiteDir resolves against the config file's directory.
	SiteDir string        `yaml:"site_dir"`
	Content ContentConfig `yaml:"content"`
	TOC     TOCConfig     `yaml:"toc"`
	Links   LinksConfig   `yaml:"links"`
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ContentConfig locates the documents of one locale.
type ContentConfig struct {
	Path          string   `yaml:"path"`
	LocalizedPath string   `yaml:"localized_path,omitempty"`
	RoutePrefix   string   `yaml:"route_prefix,omitempty"`
	Exclude       []string `yaml:"exclude,omitempty"`
	IncludeDrafts bool     `yaml:"include_drafts,omitempty"`
}

// TOCConfig sets the default heading window and whether per-document TOC
// files are written.
type TOCConfig struct {
	toc.Window `yaml:",inline"`
	Sidecar    bool `yaml:"sidecar"`
}

// LinksConfig selects the broken link policy: ignore, log, warn or throw.
type LinksConfig struct {
	OnBroken string `yaml:"on_broken"`
}

// BuildConfig tunes the build pass.
type BuildConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load reads, expands, defaults and validates the configuration at path.
// .env and .env.local in the working directory are loaded first.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(".env.local", ".env"); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.NewError(ferrors.CategoryConfig, "configuration file not found").
				WithContext("path", path).
				Fatal().
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Fatal().
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML config data after environment expansion and applies
// defaults. Unknown keys are rejected. Paths are left as written.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Build()
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// ContentPaths returns the content roots as used for link resolution.
func (c *Config) ContentPaths() contentpath.Paths {
	p := contentpath.Paths{ContentPath: c.resolve(c.Content.Path)}
	if c.Content.LocalizedPath != "" {
		p.ContentPathLocalized = c.resolve(c.Content.LocalizedPath)
	}
	return p
}

// OutputDir returns the absolute output directory.
func (c *Config) OutputDir() string {
	return c.resolve(c.Output.Directory)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.SiteDir, p)
}

func (c *Config) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.SiteDir) {
		c.SiteDir = filepath.Join(configDir, c.SiteDir)
	}
	if abs, err := filepath.Abs(c.SiteDir); err == nil {
		c.SiteDir = abs
	}
	if c.Metrics.Textfile != "" {
		c.Metrics.Textfile = c.resolve(c.Metrics.Textfile)
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	example := Config{
		SiteDir: ".",
		Content: ContentConfig{
			Path:          "blog",
			LocalizedPath: "i18n/fr/blog",
			RoutePrefix:   "/blog",
			Exclude:       []string{"*.test.md"},
		},
		TOC: TOCConfig{Window: toc.DefaultWindow(), Sidecar: true},
		Links: LinksConfig{
			OnBroken: DefaultOnBroken,
		},
		Build:  BuildConfig{Concurrency: DefaultConcurrency},
		Output: OutputConfig{Directory: DefaultOutputDir, Clean: true},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
