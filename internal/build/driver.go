package build

import (
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitesmith/internal/config"
	"git.home.luguber.info/inful/sitesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/markdown"
	"git.home.luguber.info/inful/sitesmith/internal/metrics"
	"git.home.luguber.info/inful/sitesmith/internal/plugin"
	"git.home.luguber.info/inful/sitesmith/internal/site"
	"git.home.luguber.info/inful/sitesmith/internal/workspace"
)

// Driver runs a build for one configuration.
type Driver struct {
	cfg      *config.Config
	plugins  *plugin.Registry
	recorder metrics.Recorder
	runID    string
}

// Option customizes a Driver.
type Option func(*Driver)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(d *Driver) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithPlugins replaces the registry selected from the configuration.
func WithPlugins(reg *plugin.Registry) Option {
	return func(d *Driver) { d.plugins = reg }
}

// WithRunID tags the result with the caller's run identifier.
func WithRunID(id string) Option {
	return func(d *Driver) { d.runID = id }
}

// NewDriver creates a Driver for cfg.
func NewDriver(cfg *config.Config, opts ...Option) *Driver {
	d := &Driver{cfg: cfg, recorder: metrics.NoopRecorder{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Run builds every site. The returned Result is non-nil whenever at least
// the roots could be prepared, even if the run failed.
func (d *Driver) Run() (*Result, error) {
	res := &Result{RunID: d.runID, StartTime: time.Now(), Status: StatusSuccess}
	err := d.run(res)
	res.EndTime = time.Now()
	res.Duration = res.EndTime.Sub(res.StartTime)
	if err != nil {
		res.Status = StatusFailed
	}

	outcome := metrics.ResultSuccess
	if err != nil {
		outcome = metrics.ResultFailed
	}
	d.recorder.ObserveBuildDuration(res.Duration)
	d.recorder.IncBuildOutcome(outcome)

	posts, assets := res.Counts()
	slog.Info("Build finished",
		slog.String("status", string(res.Status)),
		slog.Int("sites", len(res.Sites)),
		slog.Int("failed_sites", len(res.Failed())),
		slog.Int("posts", posts),
		slog.Int("assets", assets),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, err
}

func (d *Driver) run(res *Result) error {
	if d.cfg == nil {
		return errors.InternalError("build driver has no configuration").Build()
	}

	sitesRoot := d.cfg.SitesPath()
	if err := workspace.EnsureDir(sitesRoot); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create sites root").
			WithContext("path", sitesRoot).Fatal().Build()
	}
	deploy := workspace.NewManager(d.cfg.DeployPath())
	if err := deploy.Create(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create deploy root").
			WithContext("path", deploy.GetPath()).Fatal().Build()
	}

	plugins, err := d.registry()
	if err != nil {
		return err
	}
	slog.Debug("Plugins enabled", slog.Any("plugins", plugins.Names()))
	if err := plugins.InitAll(); err != nil {
		return errors.WrapError(err, errors.CategoryBuild, "plugin initialization failed").Fatal().Build()
	}

	names, err := workspace.ListSubdirs(sitesRoot)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to list sites").
			WithContext("path", sitesRoot).Fatal().Build()
	}
	if len(names) == 0 {
		slog.Warn("No sites found", logfields.Path(sitesRoot))
	}

	builder := site.NewBuilder(
		markdown.NewConverter(d.cfg.Markdown.Options()),
		site.Options{Order: d.cfg.Order, Layout: d.cfg.Layout, ExcerptLength: d.cfg.ExcerptLength},
		site.WithRecorder(d.recorder),
	)

	var failures []error
	for _, name := range names {
		sr := d.buildSite(builder, plugins, deploy, name, filepath.Join(sitesRoot, name))
		res.Sites = append(res.Sites, sr)
		if sr.Err == nil {
			continue
		}
		if d.cfg.OnSiteError != config.SiteErrorContinue {
			return sr.Err
		}
		slog.Error("Site build failed; continuing with remaining sites",
			logfields.Site(name), logfields.Error(sr.Err))
		failures = append(failures, sr.Err)
	}
	return stderrors.Join(failures...)
}

func (d *Driver) registry() (*plugin.Registry, error) {
	if d.plugins != nil {
		return d.plugins, nil
	}
	reg, err := plugin.Select(d.cfg.Plugins)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid plugin list").Fatal().Build()
	}
	d.plugins = reg
	return reg, nil
}

func (d *Driver) buildSite(builder *site.Builder, plugins *plugin.Registry, deploy *workspace.Manager, name, sourceDir string) (sr SiteResult) {
	start := time.Now()
	sr = SiteResult{Name: name, Status: StatusFailed, DeployDir: deploy.SiteDir(name)}
	defer func() {
		sr.Duration = time.Since(start)
		d.recorder.ObserveSiteDuration(name, sr.Duration)
		if sr.Err == nil {
			d.recorder.IncSiteOutcome(name, metrics.ResultSuccess)
		} else {
			d.recorder.IncSiteOutcome(name, metrics.ResultFailed)
		}
	}()

	slog.Info("Building site", logfields.Site(name), logfields.Path(sourceDir))

	dir, err := deploy.ResetSite(name)
	if err != nil {
		sr.Err = errors.FileSystemError("failed to reset deployment directory").WithCause(err).
			WithContext("site", name).Build()
		return sr
	}

	sc := plugin.NewSiteContext(name, sourceDir, dir)
	if err := plugins.EnterSite(sc); err != nil {
		sr.Err = errors.BuildError("plugin failed").WithCause(err).
			WithContext("site", name).Build()
		return sr
	}

	built, err := builder.Build(site.Site{Name: name, SourceDir: sourceDir, DeployDir: dir, Params: sc.Params})
	if err != nil {
		sr.Err = err
		return sr
	}

	sr.Status = StatusSuccess
	sr.Posts = len(built.Posts)
	sr.Assets = len(built.Assets)
	slog.Info("Built site", logfields.Site(name), slog.Int("posts", sr.Posts), slog.Int("assets", sr.Assets),
		logfields.DurationMS(float64(built.Duration.Milliseconds())))
	return sr
}
