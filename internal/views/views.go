// Package views renders HTML templates. It is a thin wrapper around
// html/template; everything interesting happens in the route handlers.
package views

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
)

// Renderer executes named templates parsed once at startup.
type Renderer struct {
	templates *template.Template
}

// New parses every *.html file in dir.
func New(dir string) (*Renderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}

	return &Renderer{templates: t}, nil
}

// Render writes the template named name (without extension) to w.
func (v *Renderer) Render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.templates.ExecuteTemplate(w, name+".html", data); err != nil {
		log.Printf("failed to render %v: %v", name, err)
	}
}
