// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"educonsole/internal/api"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// Count is one dashboard stat card.
type Count struct {
	Label string
	Value int
	URL   string
	Known bool // false when the upstream call failed
}

// Dashboard renders the landing page: entity counts pulled live from the
// platform plus the session's identity and token expiry.
type Dashboard struct {
	renderer    *render.Renderer
	sessions    *session.Store
	flashes     *flashQueue
	courses     *api.CourseService
	users       *api.UserService
	instructors *api.InstructorService
	posts       *api.PostService
}

// NewDashboard creates the dashboard handler.
func NewDashboard(
	renderer *render.Renderer,
	sessions *session.Store,
	flashes *flashQueue,
	courses *api.CourseService,
	users *api.UserService,
	instructors *api.InstructorService,
	posts *api.PostService,
) *Dashboard {
	return &Dashboard{
		renderer:    renderer,
		sessions:    sessions,
		flashes:     flashes,
		courses:     courses,
		users:       users,
		instructors: instructors,
		posts:       posts,
	}
}

// Home renders the dashboard. Counts come from the list endpoints' pagination
// totals, one item per page so the payloads stay tiny. A failed count renders
// as a dash instead of failing the page.
func (d *Dashboard) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	counts := []Count{
		{Label: "Courses", URL: "/admin/courses"},
		{Label: "Students", URL: "/admin/students"},
		{Label: "Instructors", URL: "/admin/instructors"},
		{Label: "Pending requests", URL: "/admin/instructors/requests"},
		{Label: "Articles", URL: "/admin/posts"},
	}
	loaders := []func(context.Context) (int, error){
		func(ctx context.Context) (int, error) {
			return totalOf(d.courses.List(ctx, api.CourseListOptions{Limit: 1}))
		},
		func(ctx context.Context) (int, error) {
			return totalOf(d.users.ListStudents(ctx, api.UserListOptions{Limit: 1}))
		},
		func(ctx context.Context) (int, error) {
			return totalOf(d.instructors.List(ctx, api.InstructorListOptions{Limit: 1}))
		},
		func(ctx context.Context) (int, error) {
			return totalOf(d.instructors.ListRequests(ctx, api.InstructorListOptions{Limit: 1}))
		},
		func(ctx context.Context) (int, error) {
			return totalOf(d.posts.List(ctx, api.PostListOptions{Limit: 1}))
		},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(loaders))
	for i := range loaders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := loaders[i](ctx)
			if err != nil {
				errs[i] = err
				slog.Warn("dashboard count failed", "card", counts[i].Label, "error", err)
				return
			}
			counts[i].Value = value
			counts[i].Known = true
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if errors.Is(err, api.ErrUnauthorized) {
			// The session is gone; the login page is the only useful render.
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	data := map[string]any{"Counts": counts}
	if expiry, ok := d.sessions.TokenExpiry(); ok {
		data["TokenExpiry"] = expiry.Local().Format(time.RFC1123)
		data["TokenExpired"] = time.Now().After(expiry)
	}

	d.renderer.Page(w, r, "dashboard", basePage("Dashboard", "dashboard", d.sessions, d.flashes, data))
}

// NoAccess explains that the signed-in role cannot open the requested screen.
func NoAccess(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Page(w, r, "no_access", basePage("No access", "", sessions, flashes, nil))
	}
}

// totalOf extracts the server-reported total from a one-item list page.
func totalOf[T any](result api.ListResult[T], err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if result.Pagination == nil {
		return len(result.Items), nil
	}
	return result.Pagination.TotalItems, nil
}
