package templates

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	PostTemplate  = "post"
	IndexTemplate = "index"
	BaseTemplate  = "base"

	// Ext marks template files. They are never deployed.
	Ext = ".tmpl"
)

var (
	// ErrMissingTemplate is returned when a required template file is absent.
	ErrMissingTemplate = errors.New("required template missing")
	// ErrRender wraps template syntax and execution failures.
	ErrRender = errors.New("template render failed")
)

// IsTemplate reports whether a site entry is a template file.
func IsTemplate(name string) bool {
	return filepath.Ext(name) == Ext
}

// Set is the parsed template collection of one site.
type Set struct {
	post   *template.Template
	index  *template.Template
	layout bool
}

// Layout reports whether pages execute through base.tmpl.
func (s *Set) Layout() bool { return s.layout }

// Load reads and parses the templates in dir. post.tmpl and index.tmpl are
// required, and base.tmpl too when layout is set.
func Load(dir string, layout bool) (*Set, error) {
	required := []string{PostTemplate, IndexTemplate}
	if layout {
		required = append(required, BaseTemplate)
	}
	sources := map[string]string{}
	for _, name := range required {
		text, err := readTemplate(dir, name)
		if err != nil {
			return nil, err
		}
		sources[name] = text
	}

	partials, err := readPartials(dir, required)
	if err != nil {
		return nil, err
	}

	s := &Set{layout: layout}
	if s.post, err = s.compile(PostTemplate, sources, partials); err != nil {
		return nil, err
	}
	if s.index, err = s.compile(IndexTemplate, sources, partials); err != nil {
		return nil, err
	}
	return s, nil
}

func readTemplate(dir, name string) (string, error) {
	path := filepath.Join(dir, name+Ext)
	// #nosec G304 -- path is built from the site directory and a fixed name.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissingTemplate, path)
		}
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return string(data), nil
}

type partial struct {
	name string
	text string
}

func readPartials(dir string, skip []string) ([]partial, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir %s: %w", dir, err)
	}
	skipped := map[string]bool{}
	for _, n := range skip {
		skipped[n] = true
	}

	var out []partial
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsTemplate(e.Name()) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), Ext)
		if skipped[name] {
			continue
		}
		text, err := readTemplate(dir, name)
		if err != nil {
			return nil, err
		}
		out = append(out, partial{name: name, text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}

// compile builds the template tree for one page. The base layout is parsed
// first so the page's defines replace its block defaults.
func (s *Set) compile(page string, sources map[string]string, partials []partial) (*template.Template, error) {
	root := template.New(page).Funcs(funcMap()).Option("missingkey=error")

	if s.layout {
		if _, err := root.New(BaseTemplate).Parse(sources[BaseTemplate]); err != nil {
			return nil, fmt.Errorf("%w: parse %s%s: %w", ErrRender, BaseTemplate, Ext, err)
		}
	}
	for _, p := range partials {
		if _, err := root.New(p.name).Parse(p.text); err != nil {
			return nil, fmt.Errorf("%w: parse %s%s: %w", ErrRender, p.name, Ext, err)
		}
	}
	if _, err := root.Parse(sources[page]); err != nil {
		return nil, fmt.Errorf("%w: parse %s%s: %w", ErrRender, page, Ext, err)
	}
	return root, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time, layout ...string) string {
			if t.IsZero() {
				return ""
			}
			if len(layout) > 0 && layout[0] != "" {
				return t.Format(layout[0])
			}
			return t.Format("2006-01-02")
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
