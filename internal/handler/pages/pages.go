// Package pages renders the static entry pages of the diary frontend.
package pages

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler renders the embedded page templates.
type Handler struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl}, nil
}

// RegisterRoutes wires the page routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page("index.html"))
	r.Get("/login", h.page("login.html"))
	r.Get("/register", h.page("register.html"))
}

func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.tmpl.ExecuteTemplate(w, name, nil); err != nil {
			log.Printf("[pages] failed to render %s: %v", name, err)
		}
	}
}
