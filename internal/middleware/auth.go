// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"

	"educonsole/internal/models"
	"educonsole/internal/session"
)

// RequireAuth redirects to the login page when no session token is held.
// Presence of a token is the only check; whether it is still valid is the
// platform's call, surfaced through the global 401 handling.
func RequireAuth(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.Authenticated() {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GuestOnly keeps signed-in operators off the login and register pages by
// bouncing them to the dashboard.
func GuestOnly(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store.Authenticated() {
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole redirects to the no-access page unless the stored profile
// carries one of the allowed roles. A missing or unreadable profile counts
// as no role. This is a UX guard only; the platform enforces authorization
// on every API call regardless.
func RequireRole(store *session.Store, roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := store.User()
			if user == nil || !allowed[user.Role] {
				http.Redirect(w, r, "/admin/no-access", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
