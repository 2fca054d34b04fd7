package config

import (
	"strings"

	"git.home.luguber.info/inful/sitesmith/internal/foundation/errors"
)

// Normalize canonicalizes enum values in place. Empty values take their
// defaults; unrecognized values are a configuration error.
func Normalize(cfg *Config) error {
	var err error
	if cfg.Order, err = orderNormalizer.NormalizeWithValidation(string(cfg.Order)); err != nil {
		return invalid(err, "order")
	}
	if cfg.OnSiteError, err = siteErrorNormalizer.NormalizeWithValidation(string(cfg.OnSiteError)); err != nil {
		return invalid(err, "on_site_error")
	}
	if cfg.Logging.Level, err = logLevelNormalizer.NormalizeWithValidation(string(cfg.Logging.Level)); err != nil {
		return invalid(err, "logging.level")
	}
	if cfg.Logging.Format, err = logFormatNormalizer.NormalizeWithValidation(string(cfg.Logging.Format)); err != nil {
		return invalid(err, "logging.format")
	}

	cfg.SitesDir = strings.TrimSpace(cfg.SitesDir)
	cfg.DeployDir = strings.TrimSpace(cfg.DeployDir)
	for i, p := range cfg.Plugins {
		cfg.Plugins[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return nil
}

func invalid(err error, key string) error {
	return errors.WrapError(err, errors.CategoryConfig, "invalid configuration value").
		WithContext("key", key).Fatal().Build()
}
