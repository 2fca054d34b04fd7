// Package plugin provides the statically registered extensions of a build.
//
// Plugins are compiled in and enabled by name from configuration. Each one
// is initialized once per run and then notified as every site is entered,
// which lets it contribute parameters that templates read as .Site.Params.
package plugin

import (
	"errors"
	"fmt"
)

// Plugin is a build extension with a fixed lifecycle.
type Plugin interface {
	// Metadata returns the plugin's identity.
	Metadata() Metadata

	// Init is called once per run, before any site is built.
	Init() error

	// EnterSite is called for each site before its deployment directory is
	// reset. It may add entries to site.Params.
	EnterSite(site *SiteContext) error
}

// Metadata describes a plugin.
type Metadata struct {
	// Name is the unique identifier used in configuration.
	Name string

	// Version is the plugin's own version.
	Version string

	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}

// Validate checks if the plugin metadata is valid.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return errors.New("plugin name is required")
	}
	if m.Version == "" {
		return errors.New("plugin version is required")
	}
	return nil
}

// SiteContext is what a plugin sees of the site being entered.
type SiteContext struct {
	Name      string
	SourceDir string
	DeployDir string
	Params    map[string]string
}

// NewSiteContext returns a context with an empty parameter map.
func NewSiteContext(name, sourceDir, deployDir string) *SiteContext {
	return &SiteContext{
		Name:      name,
		SourceDir: sourceDir,
		DeployDir: deployDir,
		Params:    map[string]string{},
	}
}

// BasePlugin provides no-op lifecycle methods. Plugins can embed it to
// implement only the hooks they need.
type BasePlugin struct{}

// Init is a no-op default implementation.
func (b *BasePlugin) Init() error {
	return nil
}

// EnterSite is a no-op default implementation.
func (b *BasePlugin) EnterSite(*SiteContext) error {
	return nil
}

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation is the lifecycle hook that failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
