package plugin

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// GitRevisionName is the configuration name of the git revision plugin.
const GitRevisionName = "gitrevision"

// ParamRevision holds the HEAD commit hash of the site's repository.
const ParamRevision = "revision"

// GitRevision records which commit of the source tree a site was built from.
// Sites outside a git repository, or in one without commits, get no revision.
type GitRevision struct {
	BasePlugin
}

// NewGitRevision creates the git revision plugin.
func NewGitRevision() *GitRevision { return &GitRevision{} }

func (g *GitRevision) Metadata() Metadata {
	return Metadata{
		Name:        GitRevisionName,
		Version:     "v1.0.0",
		Description: "Adds the source repository HEAD commit to .Site.Params",
	}
}

func (g *GitRevision) EnterSite(site *SiteContext) error {
	repo, err := git.PlainOpenWithOptions(site.SourceDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			slog.Debug("Site source is not in a git repository", logfields.Site(site.Name))
			return nil
		}
		return fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil
		}
		return fmt.Errorf("resolve HEAD: %w", err)
	}
	site.Params[ParamRevision] = head.Hash().String()
	return nil
}
