package metrics

import (
	"errors"
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitesmith"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	reg           *prom.Registry
	siteDuration  *prom.HistogramVec
	buildDuration prom.Histogram
	siteOutcome   *prom.CounterVec
	buildOutcome  *prom.CounterVec
	postsRendered *prom.CounterVec
	assetsCopied  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.siteDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "site_duration_seconds",
			Help:      "Duration of individual site builds",
			Buckets:   prom.DefBuckets,
		}, []string{"site"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.siteOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "site_outcomes_total",
			Help:      "Site build outcomes",
		}, []string{"site", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"result"})
		pr.postsRendered = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "posts_rendered_total",
			Help:      "Post pages written",
		}, []string{"site"})
		pr.assetsCopied = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "assets_copied_total",
			Help:      "Asset files copied into deployment directories",
		}, []string{"site"})
		reg.MustRegister(pr.siteDuration, pr.buildDuration, pr.siteOutcome, pr.buildOutcome, pr.postsRendered, pr.assetsCopied)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveSiteDuration(site string, d time.Duration) {
	if p == nil || p.siteDuration == nil {
		return
	}
	p.siteDuration.WithLabelValues(site).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSiteOutcome(site string, result ResultLabel) {
	if p == nil || p.siteOutcome == nil {
		return
	}
	p.siteOutcome.WithLabelValues(site, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(result ResultLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncPostsRendered(site string) {
	if p == nil || p.postsRendered == nil {
		return
	}
	p.postsRendered.WithLabelValues(site).Inc()
}

func (p *PrometheusRecorder) IncAssetsCopied(site string) {
	if p == nil || p.assetsCopied == nil {
		return
	}
	p.assetsCopied.WithLabelValues(site).Inc()
}

// WriteTextfile writes every metric of the recorder's registry to path in the
// Prometheus text exposition format. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return errors.New("metrics recorder is not initialized")
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
