// ABOUTME: Embedded HTML templates and static assets.
// ABOUTME: Each page is parsed together with the shared layout and rendered into a buffer first.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/harperreed/fitness/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names, matching files under templates/.
const (
	pageLogin          = "login.html"
	pageSignup         = "signup.html"
	pageForgotPassword = "forgot_password.html"
	pageMenu           = "index.html"
	pageDashboard      = "dashboard.html"
)

// pageData is passed to every template.
type pageData struct {
	Title      string
	AlertMsg   string
	ErrorMsg   string
	Dashboard  models.Dashboard
	Tiles      []models.Tile
	Dashboards []models.Dashboard
}

type pages struct {
	byName map[string]*template.Template
}

func loadPages() (*pages, error) {
	names := []string{pageLogin, pageSignup, pageForgotPassword, pageMenu, pageDashboard}
	p := &pages{byName: make(map[string]*template.Template, len(names))}

	for _, name := range names {
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p.byName[name] = tmpl
	}
	return p, nil
}

// render writes the named page. Nothing is written if execution fails.
func (p *pages) render(w http.ResponseWriter, status int, name string, data pageData) error {
	tmpl, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
