package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/sitesmith/internal/markdown"
	"git.home.luguber.info/inful/sitesmith/internal/post"
)

func writeConfig(t *testing.T, root, body string) string {
	t.Helper()
	path := filepath.Join(root, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingDefaultFileYieldsDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root, "")
	require.NoError(t, err)
	require.Equal(t, root, cfg.Root)
	require.Equal(t, filepath.Join(root, "sites"), cfg.SitesPath())
	require.Equal(t, filepath.Join(root, "deploy"), cfg.DeployPath())
	require.Equal(t, post.OrderDiscovery, cfg.Order)
	require.Equal(t, SiteErrorAbort, cfg.OnSiteError)
	require.False(t, cfg.Layout)
	require.Equal(t, markdown.DefaultOptions(), cfg.Markdown.Options())
	require.Equal(t, "", cfg.MetricsPath())
}

func TestLoad_ExplicitMissingFileIsConfigError(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
sites_dir: content
order: DATE
layout: true
on_site_error: Continue
excerpt_length: 40
markdown:
  hard_wraps: true
  mermaid: false
plugins: [BuildInfo, gitrevision]
metrics_file: out/metrics.prom
logging:
  level: debug
  format: json
`)

	cfg, err := Load(root, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "content"), cfg.SitesPath())
	require.Equal(t, filepath.Join(root, "deploy"), cfg.DeployPath())
	require.Equal(t, post.OrderDate, cfg.Order)
	require.True(t, cfg.Layout)
	require.Equal(t, SiteErrorContinue, cfg.OnSiteError)
	require.Equal(t, 40, cfg.ExcerptLength)
	require.Equal(t, markdown.Options{GFM: true, Footnotes: true, Mermaid: false, HardWraps: true, UnsafeHTML: true}, cfg.Markdown.Options())
	require.Equal(t, []string{"buildinfo", "gitrevision"}, cfg.Plugins)
	require.Equal(t, filepath.Join(root, "out", "metrics.prom"), cfg.MetricsPath())
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestLoad_EmptyFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")

	cfg, err := Load(root, "")
	require.NoError(t, err)
	require.Equal(t, DefaultSitesDir, cfg.SitesDir)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "sites: x\n"},
		{"bad order", "order: alphabetical\n"},
		{"bad policy", "on_site_error: retry\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"same dirs", "sites_dir: out\ndeploy_dir: out\n"},
		{"nested dirs", "sites_dir: out\ndeploy_dir: out/deploy\n"},
		{"negative excerpt", "excerpt_length: -1\n"},
		{"duplicate plugin", "plugins: [buildinfo, BUILDINFO]\n"},
		{"malformed yaml", "order: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.body)
			_, err := Load(root, "")
			require.Error(t, err)
			require.Equal(t, errors.CategoryConfig, errors.GetCategory(err))
		})
	}
}

func TestNormalizeOrder(t *testing.T) {
	o, err := NormalizeOrder(" Date ")
	require.NoError(t, err)
	require.Equal(t, post.OrderDate, o)

	o, err = NormalizeOrder("")
	require.NoError(t, err)
	require.Equal(t, post.OrderDiscovery, o)

	_, err = NormalizeOrder("random")
	require.ErrorContains(t, err, "invalid order")
}

func TestAbsolutePathsAreKept(t *testing.T) {
	cfg := Default()
	cfg.Root = "/project"
	cfg.DeployDir = "/srv/www"
	require.Equal(t, "/srv/www", cfg.DeployPath())
	require.Equal(t, "/project/sites", cfg.SitesPath())
	require.NoError(t, Validate(cfg))
}

func TestLogLevel_SlogLevel(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.SlogLevel().String())
	require.Equal(t, "WARN", LogLevelWarn.SlogLevel().String())
	require.Equal(t, "INFO", LogLevel("").SlogLevel().String())
}
