// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"educonsole/internal/api"
	"educonsole/internal/models"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

func testDeps(t *testing.T, upstream http.Handler) (*api.Client, *render.Renderer, *session.Store, *flashQueue) {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	store, err := session.NewStore(session.NewMemoryStorage())
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	if err := store.Set("test-token", &models.SessionUser{ID: "u1", FullName: "Operator", Email: "op@example.com", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("session set: %v", err)
	}

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	return api.New(server.URL, 5*time.Second, store), renderer, store, &flashQueue{}
}

func TestSubjectEditFormFlattensGradeReference(t *testing.T) {
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/subject":
			// The list endpoint populates the grade reference as a document.
			w.Write([]byte(`{
				"msg": "ok",
				"subjects": [{"_id": "s1", "subjectName": "Toán", "slug": "toan", "status": true,
					"grade": {"_id": "g1", "gradeName": "Lớp 1"}}],
				"pagination": {"currentPage": 1, "totalPages": 1, "pageSizes": 10, "totalItems": 1}
			}`))
		case "/grade":
			w.Write([]byte(`{
				"msg": "ok",
				"grades": [
					{"_id": "g1", "gradeName": "Lớp 1", "slug": "lop-1", "status": true},
					{"_id": "g2", "gradeName": "Lớp 2", "slug": "lop-2", "status": true}
				],
				"pagination": {"currentPage": 1, "totalPages": 1, "pageSizes": 100, "totalItems": 2}
			}`))
		default:
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
	})

	client, renderer, store, flashes := testDeps(t, upstream)
	screen := NewSubjectScreen(renderer, store, flashes, api.NewSubjectService(client), api.NewGradeService(client))
	t.Cleanup(screen.Close)

	r := chi.NewRouter()
	r.Route("/admin/subjects", screen.Mount)

	// Load the list so the edit form can prefill from the listed record.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin/subjects", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/subjects/toan/edit", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `value="g1" selected`) {
		t.Error("the populated grade reference should prefill as its flat id, selected")
	}
	if !strings.Contains(body, `value="g2"`) {
		t.Error("the grade select should offer the other grades")
	}
	if !strings.Contains(body, "Toán") {
		t.Error("the name input should carry the record's value")
	}
}

func TestUserUpdateOmitsEmptyPassword(t *testing.T) {
	var updateBody []byte
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/user/"):
			updateBody, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"msg":"ok","user":{"_id":"u7","fullName":"Binh","email":"binh@example.com","role":"manager"}}`))
		case r.URL.Path == "/user":
			w.Write([]byte(`{
				"msg": "ok",
				"users": [{"_id": "u7", "fullName": "Binh", "email": "binh@example.com", "role": "manager"}],
				"pagination": {"currentPage": 1, "totalPages": 1, "pageSizes": 10, "totalItems": 1}
			}`))
		default:
			t.Errorf("unexpected upstream path %s %s", r.Method, r.URL.Path)
		}
	})

	client, renderer, store, flashes := testDeps(t, upstream)
	screen := NewUserScreen(renderer, store, flashes, api.NewUserService(client))
	t.Cleanup(screen.Close)

	r := chi.NewRouter()
	r.Route("/admin/users", screen.Mount)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin/users", nil))

	form := url.Values{
		"isNew":    {"false"},
		"fullName": {"Binh"},
		"email":    {"binh@example.com"},
		"password": {""},
		"role":     {"manager"},
	}
	req := httptest.NewRequest("POST", "/admin/users/u7/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 after update, got %d; body: %s", w.Code, w.Body.String())
	}
	if updateBody == nil {
		t.Fatal("upstream never received the update")
	}
	var payload map[string]any
	if err := json.Unmarshal(updateBody, &payload); err != nil {
		t.Fatalf("payload decode: %v", err)
	}
	if _, present := payload["password"]; present {
		t.Error("an empty password must be omitted so the server keeps the current one")
	}
	if payload["role"] != "manager" {
		t.Errorf("role: got %v", payload["role"])
	}
}

func TestUserCreateRequiresPassword(t *testing.T) {
	posts := 0
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			posts++
		}
		w.Write([]byte(`{"msg":"ok","users":[],"pagination":{"currentPage":1,"totalPages":1,"pageSizes":10,"totalItems":0}}`))
	})

	client, renderer, store, flashes := testDeps(t, upstream)
	screen := NewUserScreen(renderer, store, flashes, api.NewUserService(client))
	t.Cleanup(screen.Close)

	r := chi.NewRouter()
	r.Route("/admin/users", screen.Mount)

	form := url.Values{
		"isNew":    {"true"},
		"fullName": {"Binh"},
		"email":    {"binh@example.com"},
		"password": {""},
		"role":     {"student"},
	}
	req := httptest.NewRequest("POST", "/admin/users/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("a missing password should re-render the form, got %d", w.Code)
	}
	if posts != 0 {
		t.Errorf("validation failure must stay local, saw %d upstream posts", posts)
	}
	if !strings.Contains(w.Body.String(), "Password is required.") {
		t.Error("form should explain the missing password")
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cover.png", "cover.png"},
		{"Ảnh Bìa Khóa Học.PNG", "nh-ba-kha-hc.png"},
		{"../../etc/passwd", "passwd"},
		{"???.jpg", "upload.jpg"},
		{"no extension", "no-extension"},
	}
	for _, tt := range tests {
		if got := safeFilename(tt.in); got != tt.want {
			t.Errorf("safeFilename(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlashQueueDrainsOnce(t *testing.T) {
	q := &flashQueue{}
	q.push("success", "Saved.")
	q.push("error", "Nope.")

	first := q.drain()
	if len(first) != 2 {
		t.Fatalf("expected 2 flashes, got %d", len(first))
	}
	if first[0].Type != "success" || first[1].Message != "Nope." {
		t.Errorf("flashes out of order: %+v", first)
	}
	if len(q.drain()) != 0 {
		t.Error("drain must clear the queue")
	}
}
