// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/danielhkuo/decidebox/categories"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render
const (
	PageHome       = "home"
	PageExplore    = "explore"
	PagePoll       = "poll"
	PageResult     = "result"
	PageNewPoll    = "newpoll"
	PageLogin      = "login"
	PageSignup     = "signup"
	PageMyPage     = "mypage"
	PageMyPageEdit = "mypage_edit"
	PageError      = "error"
)

var pageNames = []string{
	PageHome, PageExplore, PagePoll, PageResult, PageNewPoll,
	PageLogin, PageSignup, PageMyPage, PageMyPageEdit, PageError,
}

// Page is the data every template receives. Data holds the page-specific
// view model.
type Page struct {
	Title         string
	Path          string
	CSRFToken     string
	Flash         string
	Error         string
	Authenticated bool
	Categories    []categories.Category
	Data          interface{}
}

// Renderer executes the embedded page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page once
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name with status. Output is buffered so a template
// failure still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) {
	t, ok := r.pages[name]
	if !ok {
		slog.Error("unknown page", "page", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if p.Categories == nil {
		p.Categories = categories.Selectable()
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		slog.Error("template execution failed", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded stylesheet and other assets
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// CategoryPath is the header link for a category name
func CategoryPath(name string) string {
	return "/category/" + url.PathEscape(name)
}
