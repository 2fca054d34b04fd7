// Package helpers provides fixtures and assertions shared by package and
// integration tests.
package helpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Default page templates used by fixtures. The index lists post titles one
// per line so ordering can be asserted on the output.
const (
	DefaultPostTemplate  = `<article><h1>{{.Title}}</h1>{{.Content}}</article>`
	DefaultIndexTemplate = `<h1>{{.Title}}</h1>{{range .Posts}}
<li><a href="{{.OutputName}}">{{.Title}}</a></li>{{end}}`
)

// SiteFixture builds a project root with a sites tree for tests.
type SiteFixture struct {
	t    *testing.T
	Root string
}

// NewSiteFixture creates an empty project root under t.TempDir().
func NewSiteFixture(t *testing.T) *SiteFixture {
	t.Helper()
	return &SiteFixture{t: t, Root: t.TempDir()}
}

// SitesDir returns the default sites root.
func (f *SiteFixture) SitesDir() string { return filepath.Join(f.Root, "sites") }

// DeployDir returns the default deploy root.
func (f *SiteFixture) DeployDir() string { return filepath.Join(f.Root, "deploy") }

// SiteDir returns the source directory of site.
func (f *SiteFixture) SiteDir(site string) string { return filepath.Join(f.SitesDir(), site) }

// WithFile writes a file into a site's source directory.
func (f *SiteFixture) WithFile(site, name string, content []byte) *SiteFixture {
	f.t.Helper()
	path := filepath.Join(f.SiteDir(site), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		f.t.Fatalf("failed to create site directory: %v", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		f.t.Fatalf("failed to write %s: %v", path, err)
	}
	return f
}

// WithPost writes a post with a header metadata block.
func (f *SiteFixture) WithPost(site, name, title, date, body string) *SiteFixture {
	f.t.Helper()
	text := ""
	if title != "" {
		text += "title: " + title + "\n"
	}
	if date != "" {
		text += "creation_date: " + date + "\n"
	}
	if text != "" {
		text += "\n"
	}
	return f.WithFile(site, name, []byte(text+body))
}

// WithDefaultTemplates writes the default post and index templates.
func (f *SiteFixture) WithDefaultTemplates(site string) *SiteFixture {
	f.t.Helper()
	f.WithFile(site, "post.tmpl", []byte(DefaultPostTemplate))
	return f.WithFile(site, "index.tmpl", []byte(DefaultIndexTemplate))
}

// WithConfig writes sitesmith.yaml at the project root.
func (f *SiteFixture) WithConfig(yaml string) *SiteFixture {
	f.t.Helper()
	if err := os.WriteFile(filepath.Join(f.Root, "sitesmith.yaml"), []byte(yaml), 0o600); err != nil {
		f.t.Fatalf("failed to write config: %v", err)
	}
	return f
}

// Deploy returns assertions rooted at the deployment directory of site.
func (f *SiteFixture) Deploy(site string) *FileAssertions {
	return NewFileAssertions(f.t, filepath.Join(f.DeployDir(), site))
}
