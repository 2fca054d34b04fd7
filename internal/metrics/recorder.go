package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for a build run.
type Recorder interface {
	ObserveSiteDuration(site string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncSiteOutcome(site string, result ResultLabel)
	IncBuildOutcome(result ResultLabel)
	IncPostsRendered(site string)
	IncAssetsCopied(site string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveSiteDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncSiteOutcome(string, ResultLabel)        {}
func (NoopRecorder) IncBuildOutcome(ResultLabel)               {}
func (NoopRecorder) IncPostsRendered(string)                   {}
func (NoopRecorder) IncAssetsCopied(string)                    {}
