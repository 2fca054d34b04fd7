// Package markdown converts post sources into rendered HTML plus their metadata.
package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/sitesmith/internal/frontmatter"
)

// ErrConvert wraps every failure to turn a source into HTML.
var ErrConvert = errors.New("markdown conversion failed")

// Options selects the Markdown dialect. A Converter copies it at construction
// time, so later changes to the caller's value have no effect.
type Options struct {
	// GFM enables tables, strikethrough, autolinks and task lists.
	GFM bool
	// Footnotes enables [^ref] footnote syntax.
	Footnotes bool
	// Mermaid renders ```mermaid fences as <pre class="mermaid"> for client-side rendering.
	Mermaid bool
	// HardWraps turns soft line breaks into <br>.
	HardWraps bool
	// UnsafeHTML passes raw HTML in the source through unchanged.
	UnsafeHTML bool
}

// DefaultOptions returns the dialect used when nothing is configured.
func DefaultOptions() Options {
	return Options{GFM: true, Footnotes: true, Mermaid: true, UnsafeHTML: true}
}

// Result is one converted post.
type Result struct {
	HTML []byte
	// Meta holds the metadata block, its form, and the Markdown body it preceded.
	Meta *frontmatter.Document
}

// Converter turns raw post text into HTML. It is safe for sequential reuse.
type Converter struct {
	opts Options
	md   goldmark.Markdown
}

// NewConverter builds a goldmark pipeline for opts.
func NewConverter(opts Options) *Converter {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if opts.Mermaid {
		exts = append(exts, Mermaid)
	}

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, gmhtml.WithHardWraps())
	}
	if opts.UnsafeHTML {
		rendererOpts = append(rendererOpts, gmhtml.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Converter{opts: opts, md: md}
}

// Options returns the dialect this converter was built with.
func (c *Converter) Options() Options { return c.opts }

// Convert splits the metadata block off raw and renders the remaining body.
func (c *Converter) Convert(raw []byte) (*Result, error) {
	doc, err := frontmatter.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConvert, err)
	}

	var buf bytes.Buffer
	if err := c.md.Convert(doc.Body, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConvert, err)
	}
	return &Result{HTML: buf.Bytes(), Meta: doc}, nil
}
