package build

import "time"

// Status represents the outcome of a build or of one site.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool { return s == StatusSuccess }

// SiteResult is the outcome of one site.
type SiteResult struct {
	Name      string
	Status    Status
	Posts     int
	Assets    int
	DeployDir string
	Duration  time.Duration
	Err       error
}

// Result contains the outcome of a run.
type Result struct {
	Status    Status
	RunID     string
	Sites     []SiteResult
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Failed returns the sites that did not build.
func (r *Result) Failed() []SiteResult {
	var out []SiteResult
	for _, s := range r.Sites {
		if s.Status != StatusSuccess {
			out = append(out, s)
		}
	}
	return out
}

// Counts returns the total posts and assets written across all sites.
func (r *Result) Counts() (posts, assets int) {
	for _, s := range r.Sites {
		posts += s.Posts
		assets += s.Assets
	}
	return posts, assets
}
