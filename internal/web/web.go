// Package web serves the embedded single-page UI.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/* static/*
var embeddedFS embed.FS

// IndexData populates the image count selector in index.html.
type IndexData struct {
	MinImages     int
	MaxImages     int
	DefaultImages int
}

// Counts lists every selectable image count, for the template's range.
func (d IndexData) Counts() []int {
	counts := make([]int, 0, d.MaxImages-d.MinImages+1)
	for n := d.MinImages; n <= d.MaxImages; n++ {
		counts = append(counts, n)
	}
	return counts
}

// UI renders the index page and serves the embedded assets.
type UI struct {
	templates *template.Template
	data      IndexData
}

func NewUI(data IndexData) (*UI, error) {
	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("cannot parse templates: %w", err)
	}
	return &UI{templates: tmpl, data: data}, nil
}

func (u *UI) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := u.templates.ExecuteTemplate(w, "index.html", u.data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Static serves the embedded /static/* assets.
func Static() http.Handler {
	return http.FileServer(http.FS(embeddedFS))
}
