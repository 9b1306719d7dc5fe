// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"educonsole/internal/api"
	"educonsole/internal/forms"
	"educonsole/internal/listing"
	"educonsole/internal/models"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// InstructorRequestDraft files a new instructor application: the server
// creates the account and parks it pending review.
type InstructorRequestDraft struct {
	FullName string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// NewInstructorScreen wires the approved instructor list to /admin/instructors.
// New applications are filed from here; review happens on the requests screen.
func NewInstructorScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.InstructorService) *Screen[models.Instructor, InstructorRequestDraft] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.Instructor], error) {
		return svc.List(ctx, api.InstructorListOptions{
			Page:     q.Page,
			Limit:    q.PageSize,
			FullName: q.Filters.Keyword,
		})
	}

	spec := &FormSpec[models.Instructor, InstructorRequestDraft]{
		NewTitle: "New instructor application",
		Defaults: func() InstructorRequestDraft { return InstructorRequestDraft{} },
		FromForm: func(values map[string][]string) InstructorRequestDraft {
			return InstructorRequestDraft{
				FullName: fv(values, "fullName"),
				Email:    fv(values, "email"),
				Password: fv(values, "password"),
			}
		},
		Fields: func(ctx context.Context, mode forms.Mode, d InstructorRequestDraft, errs map[string]string) []render.Field {
			return []render.Field{
				{Name: "fullName", Label: "Full name", Type: "text", Value: d.FullName, Required: true, Error: errs["FullName"]},
				{Name: "email", Label: "Email", Type: "email", Value: d.Email, Required: true, Error: errs["Email"]},
				{Name: "password", Label: "Password", Type: "password", Required: true, Error: errs["Password"]},
			}
		},
	}

	s := NewScreen(renderer, sessions, flashes, fetch, spec, nil)
	s.Name = "instructors"
	s.Title = "Instructors"
	s.BasePath = "/admin/instructors"
	s.Searchable = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Email"}, {Label: "Specialization"}, {Label: "Status"}}
	s.KeyOf = func(i models.Instructor) string { return i.ID }
	s.Row = func(i models.Instructor) render.Row {
		return render.Row{
			Key:   i.ID,
			Cells: []string{i.FullName, i.Email, i.Specialization, string(i.Status)},
			Actions: []render.RowAction{
				{Label: "Revoke", URL: s.BasePath + "/" + i.ID + "/cancel", Method: "POST", Confirm: true},
			},
		}
	}
	s.SetSubmit(func(ctx context.Context, mode forms.Mode, key string, d InstructorRequestDraft) error {
		return svc.Request(ctx, api.InstructorRequestInput{
			FullName: d.FullName,
			Email:    d.Email,
			Password: d.Password,
		})
	})
	s.Extra = func(r chi.Router) {
		r.Post("/{key}/cancel", reviewAction(s, flashes, "Instructor access revoked.", svc.Cancel))
	}
	return s
}

// NewInstructorRequestScreen wires the pending application queue to
// /admin/instructors/requests. It is read-only apart from the review actions.
func NewInstructorRequestScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.InstructorService) *Screen[models.Instructor, struct{}] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.Instructor], error) {
		return svc.ListRequests(ctx, api.InstructorListOptions{
			Page:     q.Page,
			Limit:    q.PageSize,
			FullName: q.Filters.Keyword,
		})
	}

	s := NewScreen[models.Instructor, struct{}](renderer, sessions, flashes, fetch, nil, nil)
	s.Name = "instructors"
	s.Title = "Instructor requests"
	s.BasePath = "/admin/instructors/requests"
	s.Searchable = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Email"}, {Label: "Applied"}}
	s.KeyOf = func(i models.Instructor) string { return i.ID }
	s.Row = func(i models.Instructor) render.Row {
		return render.Row{
			Key:   i.ID,
			Cells: []string{i.FullName, i.Email, i.CreatedAt},
			Actions: []render.RowAction{
				{Label: "Approve", URL: s.BasePath + "/" + i.ID + "/approve", Method: "POST"},
				{Label: "Reject", URL: s.BasePath + "/" + i.ID + "/reject", Method: "POST", Confirm: true},
			},
		}
	}
	s.Extra = func(r chi.Router) {
		r.Post("/{key}/approve", reviewAction(s, flashes, "Application approved.", svc.Approve))
		r.Post("/{key}/reject", reviewAction(s, flashes, "Application rejected.", svc.Reject))
	}
	return s
}

// reviewAction builds a POST handler around one id-addressed mutation,
// refetching the list afterwards.
func reviewAction[T any, D any](s *Screen[T, D], flashes *flashQueue, successMsg string, action func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if err := action(r.Context(), key); err != nil {
			slog.Warn("review action failed", "screen", s.Name, "key", key, "error", err)
			flashes.push("error", api.UserMessage(err))
		} else {
			flashes.push("success", successMsg)
			s.Invalidate()
		}
		http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
	}
}
