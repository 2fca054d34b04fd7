package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	helpers "git.home.luguber.info/inful/sitesmith/internal/testutil/testutils"
	"git.home.luguber.info/inful/sitesmith/internal/version"
)

func TestBuildInfo_SetsGenerator(t *testing.T) {
	site := NewSiteContext("blog", t.TempDir(), t.TempDir())
	require.NoError(t, NewBuildInfo().EnterSite(site))
	require.Equal(t, "sitesmith "+version.Version, site.Params[ParamGenerator])
}

func TestGitRevision_ReadsHeadOfEnclosingRepo(t *testing.T) {
	root := t.TempDir()
	_, w := helpers.SetupTestGitRepo(t, root)
	siteDir := filepath.Join(root, "sites", "blog")
	require.NoError(t, os.MkdirAll(siteDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "a.txt"), []byte("hi"), 0o600))
	hash := helpers.CommitAll(t, w, "initial")

	site := NewSiteContext("blog", siteDir, t.TempDir())
	require.NoError(t, NewGitRevision().EnterSite(site))
	require.Equal(t, hash.String(), site.Params[ParamRevision])
}

func TestGitRevision_NoRepositoryIsNotAnError(t *testing.T) {
	site := NewSiteContext("blog", t.TempDir(), t.TempDir())
	require.NoError(t, NewGitRevision().EnterSite(site))
	_, ok := site.Params[ParamRevision]
	require.False(t, ok)
}

func TestGitRevision_EmptyRepositoryHasNoRevision(t *testing.T) {
	root := t.TempDir()
	helpers.SetupTestGitRepo(t, root)

	site := NewSiteContext("blog", root, t.TempDir())
	require.NoError(t, NewGitRevision().EnterSite(site))
	require.NotContains(t, site.Params, ParamRevision)
}

func TestMetadata_StringAndValidate(t *testing.T) {
	md := NewBuildInfo().Metadata()
	require.NoError(t, md.Validate())
	require.Equal(t, "buildinfo@v1.0.0", md.String())
	require.Error(t, Metadata{Name: "x"}.Validate())
}
