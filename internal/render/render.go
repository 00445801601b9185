// Package render provides HTML template rendering for the public site.
// Page templates are embedded in the binary and paired with the base
// layout at startup.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/public/*.html
var publicFS embed.FS

// PageData holds all data passed to public page templates.
type PageData struct {
	Title           string // Page title for the <title> tag
	MetaDescription string // Optional SEO description
	Section         string // Active nav section ("home", "team", ...)
	ChatEnabled     bool   // Whether the chat widget is rendered
	Data            map[string]any
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a Renderer by parsing all public templates from the
// embedded filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		// deref safely dereferences a string pointer for templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// safeHTML marks server-rendered markdown output as trusted.
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"formatDate": func(t time.Time) string {
			return t.Format("2 January 2006")
		},
		"formatDatePtr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2 January 2006")
		},
		// stars renders a testimonial rating as filled and empty stars.
		"stars": func(rating int) string {
			out := ""
			for i := 1; i <= 5; i++ {
				if i <= rating {
					out += "★"
				} else {
					out += "☆"
				}
			}
			return out
		},
	}

	r := &Renderer{templates: make(map[string]*template.Template)}

	entries, err := publicFS.ReadDir("templates/public")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmplName := name[:len(name)-len(".html")]
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			publicFS, "templates/public/base.html", "templates/public/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Render executes a page template into a buffer and returns the HTML.
// Buffering keeps half-written pages off the wire when a template
// fails, and gives the page cache complete documents to store.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a template straight to the response, for pages that
// bypass the cache.
func (rn *Renderer) Page(w http.ResponseWriter, name string, data *PageData) {
	html, err := rn.Render(name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// NotFound renders the 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter) {
	html, err := rn.Render("404", &PageData{Title: "Page Not Found", Section: ""})
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(html)
}
