package router

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

// Renderer executes the embedded page templates for c.Render.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every templates/*.html file in fsys once.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	t, err := template.ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.  Echo buffers the output, so a failed
// execution never reaches the client half-written.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
