package pages

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
)

// Renderer turns a page payload into rendered HTML.
type Renderer interface {
	Render(templateID string, payload any) ([]byte, error)
}

// templateRenderer renders with html/template files loaded once at
// startup from the templates directory.
type templateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses every *.html file in dir. Template IDs
// are the file base names without extension.
func NewTemplateRenderer(dir string) (Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		// article bodies come pre-rendered from the text processor
		"raw": func(s string) template.HTML { return template.HTML(s) },
	}).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &templateRenderer{templates: tmpl}, nil
}

func (r *templateRenderer) Render(templateID string, payload any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, templateID+".html", payload); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", templateID, err)
	}
	return buf.Bytes(), nil
}
