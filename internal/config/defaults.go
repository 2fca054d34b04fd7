package config

import "git.home.luguber.info/inful/sitesmith/internal/post"

const (
	DefaultSitesDir      = "sites"
	DefaultDeployDir     = "deploy"
	DefaultExcerptLength = 200
)

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Root:          ".",
		SitesDir:      DefaultSitesDir,
		DeployDir:     DefaultDeployDir,
		Order:         post.OrderDiscovery,
		OnSiteError:   SiteErrorAbort,
		ExcerptLength: DefaultExcerptLength,
		Markdown: MarkdownConfig{
			GFM:        true,
			Footnotes:  true,
			Mermaid:    true,
			UnsafeHTML: true,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}
