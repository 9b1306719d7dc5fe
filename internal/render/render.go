// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the console. Screens
// share a small set of generic templates (list table, entity form) driven by
// view structs, so adding an entity screen means wiring data, not markup.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"educonsole/internal/middleware"
	"educonsole/internal/models"
)

//go:embed templates/*.html
var pageFS embed.FS

// PageData holds all data passed to console templates.
type PageData struct {
	Title     string              // page title for the <title> tag
	Section   string              // active sidebar section (e.g. "grades", "posts")
	User      *models.SessionUser // current operator, nil on guest pages
	CSRFToken string              // CSRF token for forms
	Data      map[string]any      // page-specific data
	Flashes   []Flash             // one-time notification messages
}

// Flash represents a one-time notification message displayed to the operator.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Column is one table header cell.
type Column struct {
	Label string
}

// RowAction is one per-record action rendered at the end of a table row.
// POST actions render as small forms so they carry the CSRF token.
type RowAction struct {
	Label   string
	URL     string
	Method  string // "GET" renders a link, anything else a form button
	Confirm bool   // ask before submitting (deletes)
}

// Row is one table row. Key addresses the record in action URLs (slug or id).
type Row struct {
	Key     string
	Cells   []string
	Actions []RowAction
}

// Table is the view model behind the shared list template.
type Table struct {
	Columns []Column
	Rows    []Row
	Empty   string // message shown when Rows is empty
}

// Option is one <select> choice.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field is one form input in the shared entity form template.
type Field struct {
	Name     string
	Label    string
	Type     string // "text", "email", "password", "number", "checkbox", "select", "textarea"
	Value    string
	Checked  bool
	Options  []Option
	Required bool
	Error    string
	Hint     string
}

// FormView is the view model behind the shared entity form template.
type FormView struct {
	Title  string
	Action string // POST target
	Fields []Field
	Err    string // server-side failure message
	Cancel string // back link
}

// FilterView is the search/filter bar state echoed back into the list
// template. Status is "", "true", or "false" (tri-state).
type FilterView struct {
	Keyword    string
	Status     string
	ShowStatus bool
}

// Pager is the page navigation strip under a table.
type Pager struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PageSize    int
	BasePath    string
	QueryString string // current filters, re-attached to page links
}

// Renderer handles template parsing and execution for console pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":    true,
	"register": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout. When
// devMode is true, templates load CDN-hosted assets instead of the compiled
// local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "active"
				}
				return ""
			},
			"isDev": func() bool {
				return devMode
			},
			// pageRange yields the page numbers to show in the pager strip.
			"pageRange": func(total int) []int {
				if total < 1 {
					total = 1
				}
				pages := make([]int, total)
				for i := range pages {
					pages[i] = i + 1
				}
				return pages
			},
			"statusLabel": func(status bool) string {
				if status {
					return "Active"
				}
				return "Inactive"
			},
			"inc": func(n int) int { return n + 1 },
			"dec": func(n int) int { return n - 1 },
		},
	}

	entries, err := pageFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := filepath.Base(e.Name())
		if name == "base.html" {
			continue
		}
		tmplName := name[:len(name)-len(".html")]

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				pageFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				pageFS, "templates/base.html", "templates/"+name,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a console page into the base layout (or standalone for the
// guest pages). The CSRF token is injected from the request context.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &PageData{}
	}
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}
	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
