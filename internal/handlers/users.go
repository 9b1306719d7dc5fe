// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"

	"educonsole/internal/api"
	"educonsole/internal/forms"
	"educonsole/internal/listing"
	"educonsole/internal/models"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// UserDraft is the editable state of the account form. IsNew drives the
// password rule: required on create, keep-current-when-empty on edit.
type UserDraft struct {
	IsNew    bool
	FullName string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required_if=IsNew true,omitempty,min=8"`
	Role     string `validate:"required"`
	Phone    string
	Address  string
	Gender   string
	DOB      string
}

// NewUserScreen wires the account list and form to /admin/users.
func NewUserScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.UserService) *Screen[models.User, UserDraft] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.User], error) {
		return svc.List(ctx, api.UserListOptions{
			Page:     q.Page,
			Limit:    q.PageSize,
			FullName: q.Filters.Keyword,
		})
	}

	spec := &FormSpec[models.User, UserDraft]{
		NewTitle:  "New account",
		EditTitle: "Edit account",
		Defaults:  func() UserDraft { return UserDraft{IsNew: true, Role: string(models.RoleStudent)} },
		FromRecord: func(u models.User) UserDraft {
			return UserDraft{
				FullName: u.FullName,
				Email:    u.Email,
				Role:     string(u.Role),
				Phone:    u.Phone,
				Address:  u.Address,
				Gender:   u.Gender,
				DOB:      u.DOB,
			}
		},
		FromForm: func(values map[string][]string) UserDraft {
			return UserDraft{
				IsNew:    fvBool(values, "isNew"),
				FullName: fv(values, "fullName"),
				Email:    fv(values, "email"),
				Password: fv(values, "password"),
				Role:     fv(values, "role"),
				Phone:    fv(values, "phone"),
				Address:  fv(values, "address"),
				Gender:   fv(values, "gender"),
				DOB:      fv(values, "dob"),
			}
		},
		Fields: func(ctx context.Context, mode forms.Mode, d UserDraft, errs map[string]string) []render.Field {
			passwordHint := ""
			if mode == forms.ModeEdit {
				passwordHint = "Leave empty to keep the current password."
			}
			return []render.Field{
				{Name: "isNew", Label: "", Type: "hidden", Value: boolValue(mode == forms.ModeCreate)},
				{Name: "fullName", Label: "Full name", Type: "text", Value: d.FullName, Required: true, Error: errs["FullName"]},
				{Name: "email", Label: "Email", Type: "email", Value: d.Email, Required: true, Error: errs["Email"]},
				{Name: "password", Label: "Password", Type: "password", Required: mode == forms.ModeCreate, Error: errs["Password"], Hint: passwordHint},
				{Name: "role", Label: "Role", Type: "select", Required: true, Error: errs["Role"], Options: roleOptions(d.Role)},
				{Name: "phone", Label: "Phone", Type: "text", Value: d.Phone},
				{Name: "address", Label: "Address", Type: "text", Value: d.Address},
				{Name: "gender", Label: "Gender", Type: "select", Options: genderOptions(d.Gender)},
				{Name: "dob", Label: "Date of birth", Type: "date", Value: d.DOB},
			}
		},
	}

	s := NewScreen(renderer, sessions, flashes, fetch, spec, func(ctx context.Context, key string) error {
		return svc.Delete(ctx, key)
	})
	s.Name = "users"
	s.Title = "Accounts"
	s.BasePath = "/admin/users"
	s.Searchable = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Email"}, {Label: "Role"}, {Label: "Joined"}}
	s.KeyOf = func(u models.User) string { return u.ID }
	s.Row = func(u models.User) render.Row {
		return render.Row{
			Key:   u.ID,
			Cells: []string{u.FullName, u.Email, string(u.Role), u.CreatedAt},
			Actions: []render.RowAction{
				{Label: "Edit", URL: s.BasePath + "/" + u.ID + "/edit", Method: "GET"},
				{Label: "Delete", URL: s.BasePath + "/" + u.ID + "/delete", Method: "POST", Confirm: true},
			},
		}
	}
	s.SetSubmit(func(ctx context.Context, mode forms.Mode, key string, d UserDraft) error {
		if mode == forms.ModeCreate {
			_, err := svc.Create(ctx, api.UserCreateInput{
				FullName: d.FullName,
				Email:    d.Email,
				Password: d.Password,
				Role:     models.Role(d.Role),
				Phone:    d.Phone,
				Address:  d.Address,
				Gender:   d.Gender,
				DOB:      d.DOB,
			})
			return err
		}
		_, err := svc.Update(ctx, key, api.UserUpdateInput{
			FullName: d.FullName,
			Email:    d.Email,
			Password: d.Password,
			Role:     models.Role(d.Role),
			Phone:    d.Phone,
			Address:  d.Address,
			Gender:   d.Gender,
			DOB:      d.DOB,
		})
		return err
	})
	return s
}

// NewStudentScreen wires the read-only student roster to /admin/students.
func NewStudentScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.UserService) *Screen[models.User, struct{}] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.User], error) {
		return svc.ListStudents(ctx, api.UserListOptions{
			Page:     q.Page,
			Limit:    q.PageSize,
			FullName: q.Filters.Keyword,
		})
	}

	s := NewScreen[models.User, struct{}](renderer, sessions, flashes, fetch, nil, nil)
	s.Name = "students"
	s.Title = "Students"
	s.BasePath = "/admin/students"
	s.Searchable = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Email"}, {Label: "Phone"}, {Label: "Joined"}}
	s.KeyOf = func(u models.User) string { return u.ID }
	s.Row = func(u models.User) render.Row {
		return render.Row{
			Key:   u.ID,
			Cells: []string{u.FullName, u.Email, u.Phone, u.CreatedAt},
		}
	}
	return s
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func roleOptions(selected string) []render.Option {
	roles := []models.Role{
		models.RoleStudent, models.RoleInstructor, models.RoleAdmin,
		models.RoleManager, models.RoleMarketing, models.RoleContent, models.RoleStaff,
	}
	options := make([]render.Option, 0, len(roles))
	for _, role := range roles {
		options = append(options, render.Option{
			Value:    string(role),
			Label:    string(role),
			Selected: string(role) == selected,
		})
	}
	return options
}

func genderOptions(selected string) []render.Option {
	options := []render.Option{
		{Value: "", Label: "Not set"},
		{Value: "male", Label: "Male"},
		{Value: "female", Label: "Female"},
		{Value: "other", Label: "Other"},
	}
	for i := range options {
		options[i].Selected = options[i].Value == selected && selected != ""
	}
	return options
}
