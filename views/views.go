// Package views renders the site's HTML pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Site is the subset of site configuration templates need.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Post is the template-facing post shape. HTML is the sanitized output of
// the markdown pipeline; it is the only field injected without escaping.
type Post struct {
	Slug       string
	Title      string
	Date       string
	Summary    string
	Author     string
	CoverImage string
	Link       string
	Tags       []string
	HTML       template.HTML
}

// HomeData feeds the home/listing page.
type HomeData struct {
	Site      Site
	Posts     []Post
	ActiveTag string
	Tags      []string
	JSONLD    template.JS
}

// PostData feeds the post detail page.
type PostData struct {
	Site   Site
	Post   Post
	JSONLD template.JS
}

// LoginData feeds the admin login page.
type LoginData struct {
	Site     Site
	Redirect string
}

// AdminData feeds the admin dashboard.
type AdminData struct {
	Site    Site
	Posts   []Post
	Message string
}

// ErrorData feeds the not-found and server-error pages.
type ErrorData struct {
	Site    Site
	Status  int
	Message string
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

// Render executes the named template.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
