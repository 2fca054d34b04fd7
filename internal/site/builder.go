package site

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
	"git.home.luguber.info/inful/sitesmith/internal/markdown"
	"git.home.luguber.info/inful/sitesmith/internal/metrics"
	"git.home.luguber.info/inful/sitesmith/internal/post"
	"git.home.luguber.info/inful/sitesmith/internal/templates"
	"git.home.luguber.info/inful/sitesmith/internal/workspace"
)

// IndexName is the file name of every site's index page.
const IndexName = "index.html"

// Options configures how every site is built.
type Options struct {
	Order  post.Order
	Layout bool
	// ExcerptLength caps post excerpts, in characters; zero means no cap.
	ExcerptLength int
}

// Builder renders sites. It holds no per-site state, so one Builder serves a
// whole run.
type Builder struct {
	converter *markdown.Converter
	opts      Options
	recorder  metrics.Recorder
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// NewBuilder creates a Builder that converts posts with converter.
func NewBuilder(converter *markdown.Converter, opts Options, options ...BuilderOption) *Builder {
	if opts.Order == "" {
		opts.Order = post.OrderDiscovery
	}
	b := &Builder{converter: converter, opts: opts, recorder: metrics.NoopRecorder{}}
	for _, o := range options {
		o(b)
	}
	return b
}

// Site is one site to build.
type Site struct {
	Name      string
	SourceDir string
	// DeployDir must exist and be empty.
	DeployDir string
	// Params are plugin-provided values exposed as .Site.Params.
	Params map[string]string
}

// Result describes a built site.
type Result struct {
	Site     string
	Posts    []post.Rendered
	Assets   []string
	Duration time.Duration
}

// DisplayTitle is the site name with its first letter upper-cased.
func DisplayTitle(name string) string {
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// Build renders s into s.DeployDir. Any failure aborts the site; files
// written before it stay in place.
func (b *Builder) Build(s Site) (*Result, error) {
	start := time.Now()
	log := slog.With(logfields.Site(s.Name))

	log.Debug("Loading templates", logfields.Path(s.SourceDir))
	set, err := templates.Load(s.SourceDir, b.opts.Layout)
	if err != nil {
		return nil, classifyTemplateError(err, s.Name)
	}
	log.Debug("Loaded templates", slog.Bool("layout", set.Layout()))

	files, err := workspace.ListFiles(s.SourceDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list site sources").
			WithContext("site", s.Name).Fatal().Build()
	}
	files = post.DiscoveryOrder(files)

	res := &Result{Site: s.Name}
	if err := b.copyAssets(log, s, files, res); err != nil {
		return nil, err
	}

	data := templates.Site{Name: s.Name, Title: DisplayTitle(s.Name), Params: s.Params}
	if err := b.renderPosts(log, s, set, data, files, res); err != nil {
		return nil, err
	}

	post.Sort(res.Posts, b.opts.Order)

	log.Info("Rendering index", logfields.Count(len(res.Posts)))
	page, err := set.RenderIndex(templates.IndexData{Site: data, Title: data.Title, Posts: res.Posts})
	if err != nil {
		return nil, errors.RenderError("failed to render index").WithCause(err).
			WithContext("site", s.Name).Build()
	}
	if _, err := templates.WriteFile(s.DeployDir, IndexName, page); err != nil {
		return nil, classifyWriteError(err, s.Name, IndexName)
	}

	res.Duration = time.Since(start)
	return res, nil
}

func (b *Builder) copyAssets(log *slog.Logger, s Site, files []string, res *Result) error {
	for _, name := range files {
		if post.IsSource(name) || templates.IsTemplate(name) {
			continue
		}
		log.Info("Copying asset", logfields.File(name))
		if err := workspace.CopyFile(filepath.Join(s.SourceDir, name), filepath.Join(s.DeployDir, name)); err != nil {
			return classifyWriteError(err, s.Name, name)
		}
		res.Assets = append(res.Assets, name)
		b.recorder.IncAssetsCopied(s.Name)
	}
	return nil
}

func (b *Builder) renderPosts(log *slog.Logger, s Site, set *templates.Set, data templates.Site, files []string, res *Result) error {
	for _, name := range files {
		if !post.IsSource(name) {
			continue
		}
		log.Info("Rendering post", logfields.Post(name))

		rendered, err := b.convert(s, name)
		if err != nil {
			return err
		}

		sofar := append([]post.Rendered(nil), res.Posts...)
		page, err := set.RenderPost(templates.NewPostData(data, rendered, sofar))
		if err != nil {
			return errors.RenderError("failed to render post").WithCause(err).
				WithContext("site", s.Name).WithContext("post", name).Build()
		}
		if _, err := templates.WriteFile(s.DeployDir, rendered.OutputName, page); err != nil {
			return classifyWriteError(err, s.Name, rendered.OutputName)
		}

		res.Posts = append(res.Posts, rendered)
		b.recorder.IncPostsRendered(s.Name)
	}
	return nil
}

// convert reads one post and resolves everything templates see of it.
func (b *Builder) convert(s Site, name string) (post.Rendered, error) {
	// #nosec G304 -- name was listed from the site directory.
	raw, err := os.ReadFile(filepath.Join(s.SourceDir, name))
	if err != nil {
		return post.Rendered{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read post").
			WithContext("site", s.Name).WithContext("post", name).Fatal().Build()
	}

	conv, err := b.converter.Convert(raw)
	if err != nil {
		return post.Rendered{}, parseError(err, s.Name, name)
	}
	md, err := post.ParseMetadata(conv.Meta.Fields, b.opts.Order.RequiresDate())
	if err != nil {
		return post.Rendered{}, parseError(err, s.Name, name)
	}
	fp, err := post.Fingerprint(conv.Meta.Fields, conv.Meta.Body)
	if err != nil {
		return post.Rendered{}, parseError(err, s.Name, name)
	}

	excerpt := markdown.Excerpt(conv.HTML, b.opts.ExcerptLength)
	return post.NewRendered(name, md, conv.HTML, excerpt, fp), nil
}

func parseError(err error, site, name string) error {
	return errors.ParseError("failed to parse post").WithCause(err).
		WithContext("site", site).WithContext("post", name).Build()
}

func classifyTemplateError(err error, site string) error {
	switch {
	case stderrors.Is(err, templates.ErrMissingTemplate):
		return errors.WrapError(err, errors.CategoryConfig, "site is missing a required template").
			WithContext("site", site).Fatal().Build()
	case stderrors.Is(err, templates.ErrRender):
		return errors.WrapError(err, errors.CategoryRender, "failed to parse templates").
			WithContext("site", site).Fatal().Build()
	default:
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read templates").
			WithContext("site", site).Fatal().Build()
	}
}

func classifyWriteError(err error, site, name string) error {
	if stderrors.Is(err, templates.ErrOutputExists) || stderrors.Is(err, os.ErrExist) {
		return errors.WrapError(err, errors.CategoryBuild, "output name collision").
			WithContext("site", site).WithContext("file", name).Fatal().Build()
	}
	return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
		WithContext("site", site).WithContext("file", name).Fatal().Build()
}
