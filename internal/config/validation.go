package config

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/sitesmith/internal/foundation/errors"
)

// Validate checks cross-field constraints of a normalized configuration.
func Validate(cfg *Config) error {
	if cfg.SitesDir == "" {
		return errors.ConfigError("sites_dir must not be empty").Build()
	}
	if cfg.DeployDir == "" {
		return errors.ConfigError("deploy_dir must not be empty").Build()
	}

	sites, deploy := filepath.Clean(cfg.SitesPath()), filepath.Clean(cfg.DeployPath())
	if sites == deploy || isWithin(deploy, sites) || isWithin(sites, deploy) {
		return errors.ConfigError("sites_dir and deploy_dir must not overlap").
			WithContext("sites_dir", cfg.SitesDir).
			WithContext("deploy_dir", cfg.DeployDir).
			Build()
	}

	if cfg.ExcerptLength < 0 {
		return errors.ConfigError(fmt.Sprintf("excerpt_length must not be negative, got %d", cfg.ExcerptLength)).Build()
	}

	seen := map[string]bool{}
	for _, p := range cfg.Plugins {
		if p == "" {
			return errors.ConfigError("plugin names must not be empty").Build()
		}
		if seen[p] {
			return errors.ConfigError("plugin listed twice").WithContext("plugin", p).Build()
		}
		seen[p] = true
	}
	return nil
}

// isWithin reports whether child lies strictly below parent.
func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
