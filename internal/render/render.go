package render

import (
	"html/template"
	"net/http"
)

// Renderer serves the human-readable latest-points table. Templates are
// parsed once at startup; a bad glob fails the boot instead of the first
// request.
type Renderer struct {
	t *template.Template
}

func NewRenderer(glob string) (*Renderer, error) {
	t, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// Render writes the named template over data. Execution errors are
// swallowed: by then part of the page is already on the wire and the
// status line cannot be taken back.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = r.t.ExecuteTemplate(w, name, data)
}
