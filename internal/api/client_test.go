// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeTokens struct {
	token   string
	cleared bool
}

func (f *fakeTokens) Token() string { return f.token }

func (f *fakeTokens) Clear() error {
	f.token = ""
	f.cleared = true
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens *fakeTokens) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, tokens)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var got string
	tokens := &fakeTokens{token: "tok-123"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"msg":"ok","grades":[],"pagination":null}`))
	}, tokens)

	if _, err := NewGradeService(client).List(context.Background(), GradeListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer tok-123")
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var got string
	var present bool
	tokens := &fakeTokens{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{"accessToken":"t","user":{"id":"1"}}`))
	}, tokens)

	if _, err := NewAuthService(client).Login(context.Background(), Credentials{Email: "a@b.c", Password: "x"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if present {
		t.Errorf("Authorization header sent without a session: %q", got)
	}
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	tokens := &fakeTokens{token: "expired"}
	var hookCalled bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"token expired"}`))
	}, tokens)
	client.OnAuthFailure(func() { hookCalled = true })

	_, err := NewGradeService(client).List(context.Background(), GradeListOptions{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if !tokens.cleared {
		t.Error("session was not cleared after 401")
	}
	if !hookCalled {
		t.Error("auth failure hook was not invoked")
	}
}

func TestClient_ErrorEnvelopeMessage(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"msg":"grade already exists"}`))
	}, tokens)

	_, err := NewGradeService(client).Create(context.Background(), GradeInput{GradeName: "Grade 1"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Errorf("Status = %d, want 409", apiErr.Status)
	}
	if apiErr.Message() != "grade already exists" {
		t.Errorf("Message = %q, want server msg", apiErr.Message())
	}
}

func TestClient_ErrorWithoutMsgGetsGenericMessage(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>panic</html>`))
	}, tokens)

	_, err := NewGradeService(client).List(context.Background(), GradeListOptions{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Message() == "" || strings.Contains(apiErr.Message(), "html") {
		t.Errorf("Message = %q, want a generic fallback", apiErr.Message())
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}, tokens)

	_, err := NewGradeService(client).List(context.Background(), GradeListOptions{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestClient_OmitsUnsetQueryParams(t *testing.T) {
	var query string
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"msg":"ok","grades":[],"pagination":null}`))
	}, tokens)
	svc := NewGradeService(client)

	if _, err := svc.List(context.Background(), GradeListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if query != "" {
		t.Errorf("query = %q, want empty for zero-valued options", query)
	}

	active := true
	_, err := svc.List(context.Background(), GradeListOptions{
		Page: 2, Limit: 20, GradeName: "ten", Status: &active,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"page=2", "limit=20", "gradeName=ten", "status=true"} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q missing %q", query, want)
		}
	}
}

func TestClient_StatusFalseIsSent(t *testing.T) {
	var query string
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"msg":"ok","grades":[],"pagination":null}`))
	}, tokens)

	inactive := false
	_, err := NewGradeService(client).List(context.Background(), GradeListOptions{Status: &inactive})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if query != "status=false" {
		t.Errorf("query = %q, want status=false", query)
	}
}

func TestClient_EscapesSlugInPath(t *testing.T) {
	var path string
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.Write([]byte(`{"msg":"deleted"}`))
	}, tokens)

	if err := NewGradeService(client).Delete(context.Background(), "a/b c"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if path != "/grade/a%2Fb%20c" {
		t.Errorf("path = %q, want escaped slug", path)
	}
}

func TestClient_PasswordOmittedOnEmptyUpdate(t *testing.T) {
	var body []byte
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"msg":"ok","user":{"_id":"1","fullName":"A","email":"a@b.c","role":"admin"}}`))
	}, tokens)

	_, err := NewUserService(client).Update(context.Background(), "1", UserUpdateInput{
		FullName: "A", Email: "a@b.c", Role: "admin",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if strings.Contains(string(body), "password") {
		t.Errorf("payload %s contains a password key for an empty password", body)
	}
}

func TestClient_RejectsInvalidInputLocally(t *testing.T) {
	calls := 0
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"msg":"ok"}`))
	}, tokens)

	_, err := NewGradeService(client).Create(context.Background(), GradeInput{GradeName: ""})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if calls != 0 {
		t.Errorf("a payload failing its rules must not reach the platform, saw %d calls", calls)
	}

	// Untagged map payloads (status toggles) pass through untouched.
	if err := NewPostService(client).SetStatus(context.Background(), "hello", false); err != nil {
		t.Fatalf("status toggle: %v", err)
	}
	if calls != 1 {
		t.Errorf("map payload should have been sent, saw %d calls", calls)
	}
}

func TestClient_UploadMultipart(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "cover.png" {
			t.Errorf("filename = %q, want cover.png", header.Filename)
		}
		w.Write([]byte(`{"message":"uploaded","url":"https://cdn.example.com/cover.png"}`))
	}, tokens)

	url, err := NewUploadService(client).UploadImage(context.Background(), "cover.png", strings.NewReader("pngdata"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example.com/cover.png" {
		t.Errorf("url = %q", url)
	}
}

func TestClient_ChapterListUnpaginated(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chapter/go-basics" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"msg":"ok","chapters":[{"_id":"c1","chapterName":"Intro","status":true}]}`))
	}, tokens)

	result, err := NewChapterService(client).ListByCourse(context.Background(), "go-basics")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ChapterName != "Intro" {
		t.Errorf("items = %+v", result.Items)
	}
	if result.Pagination != nil {
		t.Error("nested chapter list should not carry pagination")
	}
}
