// Package view renders the console's server-side HTML pages. Templates are
// embedded in the binary; layout and styling are deliberately minimal — the
// console's value is navigation and forms, not looks.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/northcms/console-gateway/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page is the envelope every template receives.
type Page struct {
	Title string
	User  *domain.User
	// Error renders as the page's inline error banner. Login failures and
	// page-local API failures both land here.
	Error string
	Data  any
}

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render satisfies the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
