package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/sitesmith/internal/post"
)

// Site is the per-site data shared by every page.
type Site struct {
	Name   string
	Title  string
	Params map[string]string
}

// PostData is the data passed to post.tmpl. Posts holds the posts rendered
// before this one.
type PostData struct {
	Site       Site
	Post       post.Rendered
	Content    template.HTML
	Meta       map[string]any
	Title      string
	OutputName string
	Posts      []post.Rendered
}

// IndexData is the data passed to index.tmpl. Posts is the final ordered list.
type IndexData struct {
	Site  Site
	Title string
	Posts []post.Rendered
}

// NewPostData builds the post.tmpl data for p.
func NewPostData(site Site, p post.Rendered, sofar []post.Rendered) PostData {
	return PostData{
		Site:       site,
		Post:       p,
		Content:    p.Body,
		Meta:       p.Meta,
		Title:      p.Title,
		OutputName: p.OutputName,
		Posts:      sofar,
	}
}

// RenderPost executes the post page.
func (s *Set) RenderPost(data PostData) ([]byte, error) {
	return s.execute(s.post, PostTemplate, data)
}

// RenderIndex executes the index page.
func (s *Set) RenderIndex(data IndexData) ([]byte, error) {
	return s.execute(s.index, IndexTemplate, data)
}

func (s *Set) execute(tpl *template.Template, page string, data any) ([]byte, error) {
	entry := page
	if s.layout {
		entry = BaseTemplate
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, entry, data); err != nil {
		return nil, fmt.Errorf("%w: %s%s: %w", ErrRender, page, Ext, err)
	}
	return buf.Bytes(), nil
}
