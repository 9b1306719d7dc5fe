// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router assembles the console's HTTP routes: the guest-facing
// login and registration pages and the authenticated /admin area, with the
// role gates each section needs.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"educonsole/internal/handlers"
	"educonsole/internal/middleware"
	"educonsole/internal/models"
	"educonsole/internal/session"
	"educonsole/web"
)

// Options tunes router construction.
type Options struct {
	// SecureCookies marks the CSRF cookie Secure; enable behind TLS.
	SecureCookies bool
}

// New creates the configured chi router. The returned cleanup stops the
// login rate limiter's background goroutine.
func New(store *session.Store, console *handlers.Console, opts Options) (chi.Router, func()) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// The static tree is embedded at build time; a missing subtree is a
		// packaging bug, not a runtime condition.
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Brute-force guard on credential submission only.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	csrf := middleware.NewCSRF(opts.SecureCookies)

	// Guest pages. Signed-in operators are bounced to the dashboard.
	r.Group(func(r chi.Router) {
		r.Use(csrf)
		r.Use(middleware.GuestOnly(store))

		r.Get("/", console.Auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/", console.Auth.LoginSubmit)
		r.Get("/register", console.Auth.RegisterPage)
		r.With(loginLimiter.Middleware).Post("/register", console.Auth.RegisterSubmit)
	})

	// Authenticated console.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)
		r.Use(middleware.RequireAuth(store))

		r.Get("/", console.Dashboard.Home)
		r.Post("/logout", console.Auth.Logout)
		r.Get("/no-access", console.NoAccess)

		staff := []models.Role{models.RoleAdmin, models.RoleManager}
		content := []models.Role{models.RoleAdmin, models.RoleManager, models.RoleContent}
		editorial := []models.Role{models.RoleAdmin, models.RoleManager, models.RoleMarketing, models.RoleContent}

		// Account management is admin territory.
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(store, models.RoleAdmin))
			console.Users.Mount(r)
		})

		r.Route("/students", func(r chi.Router) {
			r.Use(middleware.RequireRole(store, staff...))
			console.Students.Mount(r)
		})

		r.Route("/instructors", func(r chi.Router) {
			r.Use(middleware.RequireRole(store, staff...))
			r.Route("/requests", func(r chi.Router) {
				console.InstructorRequests.Mount(r)
			})
			console.Instructors.Mount(r)
		})

		// Catalog and curriculum.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(store, content...))

			r.Route("/grades", console.Grades.Mount)
			r.Route("/subjects", console.Subjects.Mount)
			r.Route("/courses", func(r chi.Router) {
				r.Route("/{courseSlug}/chapters", console.Curriculum.Mount)
				console.Courses.Mount(r)
			})
		})

		// Blog.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(store, editorial...))

			r.Route("/posts", console.Posts.Mount)
			r.Route("/post-categories", console.PostCategories.Mount)
		})

		// Media uploads feed the course, lecture, and article forms.
		r.Route("/uploads", func(r chi.Router) {
			r.Use(middleware.RequireRole(store, editorial...))
			r.Post("/image", console.Uploads.Image)
			r.Post("/video", console.Uploads.Video)
		})
	})

	return r, loginLimiter.Stop
}

// healthHandler reports liveness; it says nothing about the platform API.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
