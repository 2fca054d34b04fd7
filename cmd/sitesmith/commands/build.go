package commands

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitesmith/internal/build"
	"git.home.luguber.info/inful/sitesmith/internal/config"
	"git.home.luguber.info/inful/sitesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/metrics"
)

// Run loads the configuration, builds every site, and returns the process
// exit code. Logs and the failure message go to stderr.
func (c *CLI) Run(stderr io.Writer) int {
	runID := uuid.NewString()
	adapter := errors.NewCLIErrorAdapter(c.Verbose, slog.Default().With(logfields.RunID(runID))).WithOutput(stderr)

	cfg, err := c.loadConfig()
	if err != nil {
		return adapter.HandleError(err)
	}

	logger := newLogger(stderr, cfg.Logging, c.Verbose).With(logfields.RunID(runID))
	slog.SetDefault(logger)
	adapter = errors.NewCLIErrorAdapter(c.Verbose, logger).WithOutput(stderr)

	slog.Info("Starting build",
		logfields.Path(cfg.Root),
		slog.String("order", string(cfg.Order)),
		slog.Bool("layout", cfg.Layout),
		slog.String("on_site_error", string(cfg.OnSiteError)))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsPath() != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	_, err = build.NewDriver(cfg, build.WithRecorder(recorder), build.WithRunID(runID)).Run()

	if prom != nil {
		if werr := prom.WriteTextfile(cfg.MetricsPath()); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(cfg.MetricsPath()), logfields.Error(werr))
		}
	}
	return adapter.HandleError(err)
}

// loadConfig reads the configuration and applies flag overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Root, c.Config)
	if err != nil {
		return nil, err
	}
	if c.Order != "" {
		order, err := config.NormalizeOrder(c.Order)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid --order flag").Fatal().Build()
		}
		cfg.Order = order
	}
	if c.Layout {
		cfg.Layout = true
	}
	if c.MetricsFile != "" {
		cfg.MetricsFile = c.MetricsFile
	}
	return cfg, nil
}
