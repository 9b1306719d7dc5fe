// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"educonsole/internal/middleware"
	"educonsole/internal/models"
)

func helperUser() *models.SessionUser {
	return &models.SessionUser{
		ID:       "u1",
		Email:    "op@example.com",
		FullName: "Test Operator",
		Role:     models.RoleAdmin,
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		devMode bool
	}{
		{"dev mode", true},
		{"prod mode", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rn, err := New(tt.devMode)
			if err != nil {
				t.Fatalf("New(devMode=%v) returned error: %v", tt.devMode, err)
			}
			if len(rn.templates) == 0 {
				t.Error("renderer has no parsed templates")
			}

			for _, name := range []string{"dashboard", "login", "register", "list", "form", "no_access"} {
				if _, ok := rn.templates[name]; !ok {
					t.Errorf("expected template %q to be parsed", name)
				}
			}

			// base.html should NOT appear as a standalone template key.
			if _, ok := rn.templates["base"]; ok {
				t.Error("base.html should not be registered as a separate template")
			}
		})
	}
}

func TestDevModeAssets(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New(true) error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rn.Page(w, req, "login", &PageData{Title: "Sign in", Data: map[string]any{}})

	body := w.Body.String()
	if !strings.Contains(body, "cdn.jsdelivr.net") {
		t.Error("dev mode: expected CDN stylesheet URL in rendered output")
	}
	if strings.Contains(body, "/static/css/console.css") {
		t.Error("dev mode: should NOT contain local static asset path")
	}
}

func TestProdModeAssets(t *testing.T) {
	rn, err := New(false)
	if err != nil {
		t.Fatalf("New(false) error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rn.Page(w, req, "login", &PageData{Title: "Sign in", Data: map[string]any{}})

	body := w.Body.String()
	if strings.Contains(body, "cdn.jsdelivr.net") {
		t.Error("prod mode: should NOT contain CDN stylesheet URL")
	}
	if !strings.Contains(body, "/static/css/console.css") {
		t.Error("prod mode: expected local static asset path in rendered output")
	}
}

func TestDashboardPageRendering(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()

	rn.Page(w, req, "dashboard", &PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		User:    helperUser(),
		Data: map[string]any{
			"Counts": []map[string]any{
				{"Label": "Courses", "Value": 12, "URL": "/admin/courses", "Known": true},
			},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("full page render should contain the base layout")
	}
	if !strings.Contains(body, "EduConsole") {
		t.Error("full page render should contain the console branding")
	}
	if !strings.Contains(body, "Test Operator") {
		t.Error("rendered output should contain the operator's name")
	}
	if !strings.Contains(body, "Courses") {
		t.Error("rendered output should contain the entity count cards")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestListPageRendering(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/grades", nil)
	w := httptest.NewRecorder()

	rn.Page(w, req, "list", &PageData{
		Title:   "Grades",
		Section: "grades",
		User:    helperUser(),
		Data: map[string]any{
			"BasePath": "/admin/grades",
			"NewURL":   "/admin/grades/new",
			"Filter":   FilterView{Keyword: "lớp", Status: "true", ShowStatus: true},
			"PageSizes": []int{10, 20, 50},
			"Table": Table{
				Columns: []Column{{Label: "Name"}, {Label: "Status"}},
				Rows: []Row{
					{
						Key:   "lop-1",
						Cells: []string{"Lớp 1", "Active"},
						Actions: []RowAction{
							{Label: "Edit", URL: "/admin/grades/lop-1/edit", Method: "GET"},
							{Label: "Delete", URL: "/admin/grades/lop-1/delete", Method: "POST", Confirm: true},
						},
					},
				},
				Empty: "No grades found.",
			},
			"Pager": Pager{CurrentPage: 2, TotalPages: 3, TotalItems: 25, PageSize: 10, BasePath: "/admin/grades"},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{"Lớp 1", "lớp", "/admin/grades/new", "/admin/grades/lop-1/edit", "25 records"} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered list missing %q", want)
		}
	}
	if !strings.Contains(body, "confirm(") {
		t.Error("delete action should ask for confirmation")
	}
}

func TestListPageEmptyState(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/grades", nil)
	w := httptest.NewRecorder()
	rn.Page(w, req, "list", &PageData{
		Title:   "Grades",
		Section: "grades",
		User:    helperUser(),
		Data: map[string]any{
			"BasePath":  "/admin/grades",
			"PageSizes": []int{10, 20, 50},
			"Table":     Table{Columns: []Column{{Label: "Name"}}, Empty: "No grades found."},
			"Pager":     Pager{CurrentPage: 1, TotalPages: 1},
		},
	})

	if !strings.Contains(w.Body.String(), "No grades found.") {
		t.Error("empty table should render the empty message")
	}
}

func TestFormPageRendering(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/grades/new", nil)
	w := httptest.NewRecorder()
	rn.Page(w, req, "form", &PageData{
		Title:   "New grade",
		Section: "grades",
		User:    helperUser(),
		Data: map[string]any{
			"Form": FormView{
				Title:  "New grade",
				Action: "/admin/grades/new",
				Cancel: "/admin/grades",
				Err:    "grade already exists",
				Fields: []Field{
					{Name: "gradeName", Label: "Name", Type: "text", Value: "Lớp 1", Required: true, Error: "GradeName is required."},
					{Name: "status", Label: "Active", Type: "checkbox", Checked: true},
					{Name: "grade", Label: "Grade", Type: "select", Options: []Option{
						{Value: "g1", Label: "Lớp 1", Selected: true},
					}},
				},
			},
		},
	})

	body := w.Body.String()
	for _, want := range []string{"grade already exists", `name="gradeName"`, `value="Lớp 1"`, "GradeName is required.", `<option value="g1" selected`} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered form missing %q", want)
		}
	}
}

func TestStandaloneTemplates(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, name := range []string{"login", "register"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+name, nil)
			w := httptest.NewRecorder()
			rn.Page(w, req, name, &PageData{Title: name, Data: map[string]any{}})

			if w.Code != http.StatusOK {
				t.Fatalf("template %q: expected 200, got %d; body: %s", name, w.Code, w.Body.String())
			}
			body := w.Body.String()
			if !strings.Contains(body, "<!DOCTYPE html>") {
				t.Errorf("template %q: expected standalone HTML document", name)
			}
			if strings.Contains(body, "/admin/grades") {
				t.Errorf("template %q: should NOT contain the console navigation", name)
			}
		})
	}
}

func TestMissingTemplate(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/nope", nil)
	w := httptest.NewRecorder()
	rn.Page(w, req, "nonexistent_template", &PageData{Title: "Missing"})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Error("error response should mention template not found")
	}
}

func TestPageDataCSRFInjection(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// Run a request through the CSRF middleware to get a token in context.
	csrf := middleware.NewCSRF(false)
	var capturedReq *http.Request
	inner := csrf(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
	}))
	setupRR := httptest.NewRecorder()
	inner.ServeHTTP(setupRR, httptest.NewRequest(http.MethodGet, "/", nil))

	if capturedReq == nil {
		t.Fatal("CSRF middleware did not call inner handler")
	}
	token := middleware.CSRFTokenFromCtx(capturedReq.Context())
	if token == "" {
		t.Fatal("CSRF token not found in context")
	}

	w := httptest.NewRecorder()
	data := &PageData{Title: "Sign in", Data: map[string]any{}}
	rn.Page(w, capturedReq, "login", data)

	if !strings.Contains(w.Body.String(), token) {
		t.Error("rendered output should contain the CSRF token from context")
	}
	if data.CSRFToken != token {
		t.Errorf("PageData.CSRFToken: got %q, want %q", data.CSRFToken, token)
	}
}
