package plugin

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// ErrUnknownPlugin is returned when configuration names a plugin that is not
// built in.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Registry holds the enabled plugins in registration order. Hooks run in
// that order.
type Registry struct {
	order   []Plugin
	plugins map[string]Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register appends a plugin.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return errors.New("cannot register nil plugin")
	}

	metadata := plugin.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}
	if _, exists := r.plugins[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered", metadata.Name)
	}

	r.plugins[metadata.Name] = plugin
	r.order = append(r.order, plugin)
	return nil
}

// Names returns the registered plugin names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, p := range r.order {
		names = append(names, p.Metadata().Name)
	}
	return names
}

// InitAll runs Init on every plugin and stops at the first failure.
func (r *Registry) InitAll() error {
	for _, p := range r.order {
		name := p.Metadata().Name
		slog.Debug("Initializing plugin", logfields.Plugin(name))
		if err := p.Init(); err != nil {
			return NewPluginError(name, "init", err)
		}
	}
	return nil
}

// EnterSite notifies every plugin that site is about to be built.
func (r *Registry) EnterSite(site *SiteContext) error {
	if site.Params == nil {
		site.Params = map[string]string{}
	}
	for _, p := range r.order {
		name := p.Metadata().Name
		if err := p.EnterSite(site); err != nil {
			return NewPluginError(name, "enter_site", err)
		}
	}
	return nil
}

// Builtins returns a fresh instance of every compiled-in plugin, keyed by name.
func Builtins() map[string]Plugin {
	return map[string]Plugin{
		BuildInfoName:   NewBuildInfo(),
		GitRevisionName: NewGitRevision(),
	}
}

// Select builds a registry from the named built-in plugins, in the given
// order. An unknown or repeated name is an error.
func Select(names []string) (*Registry, error) {
	catalog := Builtins()
	reg := NewRegistry()
	for _, name := range names {
		p, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
