package plugin

import "git.home.luguber.info/inful/sitesmith/internal/version"

// BuildInfoName is the configuration name of the build info plugin.
const BuildInfoName = "buildinfo"

// ParamGenerator holds "sitesmith <version>".
const ParamGenerator = "generator"

// BuildInfo exposes the generator version to templates.
type BuildInfo struct {
	BasePlugin
}

// NewBuildInfo creates the build info plugin.
func NewBuildInfo() *BuildInfo { return &BuildInfo{} }

func (b *BuildInfo) Metadata() Metadata {
	return Metadata{
		Name:        BuildInfoName,
		Version:     "v1.0.0",
		Description: "Adds the generator name and version to .Site.Params",
	}
}

func (b *BuildInfo) EnterSite(site *SiteContext) error {
	site.Params[ParamGenerator] = "sitesmith " + version.Version
	return nil
}
