// Package templates renders named html/template files with the site
// settings injected.
package templates

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"maps"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDateLayout is used by format_date when no layout is given.
const DefaultDateLayout = "2006-01-02 15:04:05"

// Templates is safe for concurrent use once created.
type Templates struct {
	set  *template.Template
	site Site
}

// New parses every *.html file in dir. Templates are addressed by file name.
func New(dir string, site Site) (*Templates, error) {
	pattern := filepath.Join(dir, "*.html")
	set, err := template.New("").Funcs(Funcs()).ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates %s: %w", pattern, err)
	}
	return &Templates{set: set, site: site}, nil
}

// Site returns the injected site settings.
func (t *Templates) Site() Site { return t.site }

// Render executes name with a copy of data plus the "site" key.
func (t *Templates) Render(name string, data map[string]any) (string, error) {
	ctx := make(map[string]any, len(data)+1)
	maps.Copy(ctx, data)
	ctx["site"] = t.site

	var buf bytes.Buffer
	if err := t.set.ExecuteTemplate(&buf, name, ctx); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.String(), nil
}

// Funcs returns the template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"format_date": formatDate,
		"nl2p":        nl2p,
		"safe_html":   func(s string) template.HTML { return template.HTML(s) },
		"dict":        dict,
	}
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// formatDate formats t with an optional Go layout.
func formatDate(t time.Time, layout ...string) string {
	if t.IsZero() {
		return "Invalid date"
	}
	if len(layout) > 0 && layout[0] != "" {
		return t.Format(layout[0])
	}
	return t.Format(DefaultDateLayout)
}

// nl2p escapes s and turns each newline into a paragraph break.
func nl2p(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(html.EscapeString(s), "\n", "</p><p>"))
}
