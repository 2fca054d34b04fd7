// Package commands implements the sitesmith command line.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitesmith/internal/config"
)

// CLI definition & global flags. Every flag is optional; running without
// arguments builds the project in the current directory.
type CLI struct {
	Root        string           `short:"r" help:"Project root holding the sites and deploy directories" default:"." type:"path"`
	Config      string           `short:"c" help:"Configuration file (default: <root>/sitesmith.yaml)" type:"path"`
	Order       string           `help:"Post ordering policy (discovery|date); overrides the configuration"`
	Layout      bool             `help:"Render pages through each site's base.tmpl"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus text-format metrics to this file after the run" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
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

// newLogger builds the process logger from the loaded configuration. The
// --verbose flag wins over the configured level.
func newLogger(w io.Writer, cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := cfg.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
