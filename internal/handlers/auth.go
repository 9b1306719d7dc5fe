// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"educonsole/internal/api"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// Auth groups the sign-in, registration, and sign-out handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	service  *api.AuthService
	flashes  *flashQueue
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, service *api.AuthService, flashes *flashQueue) *Auth {
	return &Auth{renderer: renderer, sessions: sessions, service: service, flashes: flashes}
}

// LoginPage renders the login form, along with any notice queued before the
// operator landed here (an expired session, a finished logout).
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "login", &render.PageData{
		Title:   "Sign in",
		Data:    map[string]any{},
		Flashes: a.flashes.drain(),
	})
}

// LoginSubmit exchanges the credentials for a platform token and persists
// the session. The clear-epoch is captured before the network round-trip so
// a logout or 401-clear racing this login always wins.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	creds := api.Credentials{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	epoch := a.sessions.Epoch()
	result, err := a.service.Login(r.Context(), creds)
	if err != nil {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign in",
			Data: map[string]any{
				"Email": creds.Email,
				"Error": api.UserMessage(err),
			},
		})
		return
	}

	user, err := result.Profile()
	if err != nil {
		// Token is usable even when the profile shape is unexpected; the
		// role-gated screens will fail closed without a profile.
		slog.Warn("login response profile unreadable", "error", err)
		user = nil
	}

	stored, err := a.sessions.SetIfEpoch(epoch, result.AccessToken, user)
	if err != nil {
		slog.Error("session persist failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign in",
			Data: map[string]any{
				"Email": creds.Email,
				"Error": "Could not save the session. Check the console's storage configuration.",
			},
		})
		return
	}
	if !stored {
		// A concurrent logout won the race; land on the login page signed out.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// RegisterPage renders the self-registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "register", &render.PageData{
		Title: "Register",
		Data:  map[string]any{},
	})
}

// RegisterSubmit creates a new student account. Registration does not sign
// the account in; roles are granted later from the user screen.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	input := api.RegisterInput{
		FullName: r.FormValue("fullName"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if err := a.service.Register(r.Context(), input); err != nil {
		a.renderer.Page(w, r, "register", &render.PageData{
			Title: "Register",
			Data: map[string]any{
				"FullName": input.FullName,
				"Email":    input.Email,
				"Error":    api.UserMessage(err),
			},
		})
		return
	}

	a.renderer.Page(w, r, "register", &render.PageData{
		Title: "Register",
		Data:  map[string]any{"Success": "Account created. You can sign in now."},
	})
}

// Logout clears the session and returns to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Clear(); err != nil {
		slog.Error("session clear failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
