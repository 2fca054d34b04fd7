// Package config loads the optional project configuration file and resolves
// it against command-line overrides.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/sitesmith/internal/markdown"
	"git.home.luguber.info/inful/sitesmith/internal/post"
)

// DefaultFileName is looked up in the project root when no path is given.
const DefaultFileName = "sitesmith.yaml"

// Config represents the application configuration.
type Config struct {
	// Root is the project root every relative path resolves against. It is
	// set by Load, never read from the file.
	Root string `yaml:"-"`

	SitesDir  string `yaml:"sites_dir"`
	DeployDir string `yaml:"deploy_dir"`

	Order       post.Order      `yaml:"order"`
	Layout      bool            `yaml:"layout"`
	OnSiteError SiteErrorPolicy `yaml:"on_site_error"`

	// ExcerptLength caps the excerpt of each post, in characters. Zero keeps
	// the whole first paragraph.
	ExcerptLength int `yaml:"excerpt_length"`

	Markdown MarkdownConfig `yaml:"markdown"`

	// Plugins lists built-in plugins to enable, in hook order.
	Plugins []string `yaml:"plugins,omitempty"`

	// MetricsFile, when set, receives a Prometheus text-format dump after the run.
	MetricsFile string `yaml:"metrics_file,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// MarkdownConfig selects the Markdown dialect.
type MarkdownConfig struct {
	GFM        bool `yaml:"gfm"`
	Footnotes  bool `yaml:"footnotes"`
	Mermaid    bool `yaml:"mermaid"`
	HardWraps  bool `yaml:"hard_wraps"`
	UnsafeHTML bool `yaml:"unsafe_html"`
}

// Options converts the configuration into converter options.
func (m MarkdownConfig) Options() markdown.Options {
	return markdown.Options{
		GFM:        m.GFM,
		Footnotes:  m.Footnotes,
		Mermaid:    m.Mermaid,
		HardWraps:  m.HardWraps,
		UnsafeHTML: m.UnsafeHTML,
	}
}

// SitesPath returns the absolute-or-root-relative sites root.
func (c *Config) SitesPath() string { return c.resolve(c.SitesDir) }

// DeployPath returns the absolute-or-root-relative deploy root.
func (c *Config) DeployPath() string { return c.resolve(c.DeployDir) }

// MetricsPath returns the metrics file path, or "" when metrics are off.
func (c *Config) MetricsPath() string {
	if c.MetricsFile == "" {
		return ""
	}
	return c.resolve(c.MetricsFile)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}

// Load reads the configuration for the project at root. When path is empty
// the default file in root is used and may be absent; an explicitly named
// file must exist. The result is normalized and validated.
func Load(root, path string) (*Config, error) {
	if root == "" {
		root = "."
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, DefaultFileName)
	}

	cfg := Default()
	cfg.Root = root

	// #nosec G304 -- the config path is supplied by the operator.
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
				WithContext("path", path).Fatal().Build()
		}
	case stderrors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).Fatal().Build()
	}

	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays the file onto cfg, so keys absent from the file keep their
// defaults. Unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}
