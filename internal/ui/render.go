package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/printlayout"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS exposes the embedded scripts and styles rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var pages = []string{"list.html", "editor.html"}

// Renderer holds the parsed page and partial templates.
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
}

var funcMap = template.FuncMap{
	"printScaleVar":   func() string { return printlayout.ScaleVar },
	"printWrapper":    func() string { return printlayout.WrapperClass },
	"pageWidthPx":     func() float64 { return printlayout.PageWidthPx },
	"pageHeightPx":    func() float64 { return printlayout.PageHeightPx },
	"printResetDelay": func() int64 { return printlayout.ResetDelay.Milliseconds() },
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

// NewRenderer parses the embedded templates once.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		t, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS,
			"templates/layouts/base.html",
			"templates/partials/*.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}

	partials, err := template.New("partials").Funcs(funcMap).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.partials = partials
	return r, nil
}

// RenderTemplate renders a page with the base layout.
func (r *Renderer) RenderTemplate(w http.ResponseWriter, page string, data map[string]interface{}) error {
	t, ok := r.pages[page]
	if !ok {
		http.Error(w, "Unknown page", http.StatusInternalServerError)
		return fmt.Errorf("unknown page %q", page)
	}
	return execute(w, http.StatusOK, t, "base.html", data)
}

// RenderPartial renders one named partial (for HTMX responses).
func (r *Renderer) RenderPartial(w http.ResponseWriter, status int, name string, data map[string]interface{}) error {
	return execute(w, status, r.partials, name, data)
}

func execute(w http.ResponseWriter, status int, t *template.Template, name string, data map[string]interface{}) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logging.Error("Template render failed", "template", name, "error", err.Error())
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
