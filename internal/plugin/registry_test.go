package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	BasePlugin
	name    string
	calls   *[]string
	initErr error
}

func (p *recordingPlugin) Metadata() Metadata {
	return Metadata{Name: p.name, Version: "v0.0.1"}
}

func (p *recordingPlugin) Init() error {
	*p.calls = append(*p.calls, p.name+":init")
	return p.initErr
}

func (p *recordingPlugin) EnterSite(site *SiteContext) error {
	*p.calls = append(*p.calls, p.name+":enter:"+site.Name)
	site.Params[p.name] = "seen"
	return nil
}

func TestRegistry_RegisterRejectsDuplicatesAndInvalid(t *testing.T) {
	var calls []string
	reg := NewRegistry()

	require.NoError(t, reg.Register(&recordingPlugin{name: "a", calls: &calls}))
	require.Error(t, reg.Register(&recordingPlugin{name: "a", calls: &calls}))
	require.Error(t, reg.Register(nil))
	require.Error(t, reg.Register(&recordingPlugin{name: "", calls: &calls}))

	require.Equal(t, []string{"a"}, reg.Names())
}

func TestRegistry_HooksRunInRegistrationOrder(t *testing.T) {
	var calls []string
	reg := NewRegistry()
	require.NoError(t, reg.Register(&recordingPlugin{name: "b", calls: &calls}))
	require.NoError(t, reg.Register(&recordingPlugin{name: "a", calls: &calls}))

	require.NoError(t, reg.InitAll())
	site := &SiteContext{Name: "blog"}
	require.NoError(t, reg.EnterSite(site))

	require.Equal(t, []string{"b:init", "a:init", "b:enter:blog", "a:enter:blog"}, calls)
	require.Equal(t, map[string]string{"a": "seen", "b": "seen"}, site.Params)
}

func TestRegistry_InitFailureIsPluginError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	reg := NewRegistry()
	require.NoError(t, reg.Register(&recordingPlugin{name: "bad", calls: &calls, initErr: boom}))
	require.NoError(t, reg.Register(&recordingPlugin{name: "after", calls: &calls}))

	err := reg.InitAll()
	require.ErrorIs(t, err, boom)
	var pe *PluginError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "bad", pe.PluginName)
	require.Equal(t, []string{"bad:init"}, calls)
}

func TestSelect(t *testing.T) {
	reg, err := Select([]string{GitRevisionName, BuildInfoName})
	require.NoError(t, err)
	require.Equal(t, []string{GitRevisionName, BuildInfoName}, reg.Names())

	_, err = Select([]string{"autoload"})
	require.ErrorIs(t, err, ErrUnknownPlugin)

	_, err = Select([]string{BuildInfoName, BuildInfoName})
	require.Error(t, err)

	reg, err = Select(nil)
	require.NoError(t, err)
	require.Empty(t, reg.Names())
}
