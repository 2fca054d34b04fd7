package post

import (
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitesmith/internal/frontmatter"
)

const (
	SourceExt = ".txt"
	OutputExt = ".html"
)

// Rendered is a converted post as seen by templates. It carries enough of the
// metadata for the index to render without re-parsing.
type Rendered struct {
	// Title is the metadata title, or OutputName when the post has none.
	Title      string
	Date       time.Time
	HasDate    bool
	OutputName string
	SourceName string
	Body       template.HTML
	Meta       map[string]any
	Excerpt    string
	// Fingerprint identifies the post content independent of how the metadata
	// block was written.
	Fingerprint string
}

// OutputName replaces the source extension with the HTML extension.
func OutputName(sourceName string) string {
	return strings.TrimSuffix(sourceName, filepath.Ext(sourceName)) + OutputExt
}

// IsSource reports whether name is a post source file.
func IsSource(name string) bool {
	return filepath.Ext(name) == SourceExt
}

// NewRendered assembles the template view of one post.
func NewRendered(sourceName string, md Metadata, body []byte, excerpt string, fingerprint string) Rendered {
	out := OutputName(sourceName)
	title := md.Title
	if !md.HasTitle {
		title = out
	}
	return Rendered{
		Title:       title,
		Date:        md.CreationDate,
		HasDate:     md.HasCreationDate,
		OutputName:  out,
		SourceName:  sourceName,
		Body:        template.HTML(body), //nolint:gosec // converter output is trusted HTML
		Meta:        md.Fields,
		Excerpt:     excerpt,
		Fingerprint: fingerprint,
	}
}

// Fingerprint hashes the canonical form of fields together with the Markdown
// body. A stored fingerprint key is ignored.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		forHash[k] = v
	}

	canonical, err := frontmatter.Canonical(forHash)
	if err != nil {
		return "", err
	}
	return mdfp.CalculateFingerprintFromParts(string(canonical), string(body)), nil
}
