// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// UserService manages platform accounts (/user) and the read-only student
// roster (/user/students).
type UserService struct {
	client *Client
}

// NewUserService returns a new UserService.
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// UserCreateInput is the field set for a new account. Password is mandatory
// on create only.
type UserCreateInput struct {
	FullName string      `json:"fullName" validate:"required,min=2"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     models.Role `json:"role" validate:"required"`
	Phone    string      `json:"phone,omitempty"`
	Address  string      `json:"address,omitempty"`
	Gender   string      `json:"gender,omitempty"`
	DOB      string      `json:"dob,omitempty"`
}

// UserUpdateInput is the field set for editing an account. An empty Password
// is omitted from the payload entirely so the server keeps the current one.
type UserUpdateInput struct {
	FullName string      `json:"fullName" validate:"required,min=2"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     models.Role `json:"role" validate:"required"`
	Phone    string      `json:"phone,omitempty"`
	Address  string      `json:"address,omitempty"`
	Gender   string      `json:"gender,omitempty"`
	DOB      string      `json:"dob,omitempty"`
}

// UserListOptions filters the account list.
type UserListOptions struct {
	Page     int
	Limit    int
	FullName string
	Email    string
	Role     models.Role
}

func (o UserListOptions) query() url.Values {
	return newListQuery().
		page(o.Page).
		limit(o.Limit).
		text("fullName", o.FullName).
		text("email", o.Email).
		text("role", string(o.Role)).values
}

type userListEnvelope struct {
	Msg        string             `json:"msg"`
	Users      []models.User      `json:"users"`
	Pagination *models.Pagination `json:"pagination"`
}

type studentListEnvelope struct {
	Msg        string             `json:"msg"`
	Students   []models.User      `json:"students"`
	Pagination *models.Pagination `json:"pagination"`
}

type userEnvelope struct {
	Msg  string       `json:"msg"`
	User *models.User `json:"user"`
}

// List fetches one page of accounts.
func (s *UserService) List(ctx context.Context, opts UserListOptions) (ListResult[models.User], error) {
	var envelope userListEnvelope
	if err := s.client.getJSON(ctx, "/user", opts.query(), &envelope); err != nil {
		return ListResult[models.User]{}, err
	}
	return ListResult[models.User]{Items: envelope.Users, Pagination: envelope.Pagination}, nil
}

// ListStudents fetches one page of accounts with the student role.
func (s *UserService) ListStudents(ctx context.Context, opts UserListOptions) (ListResult[models.User], error) {
	var envelope studentListEnvelope
	if err := s.client.getJSON(ctx, "/user/students", opts.query(), &envelope); err != nil {
		return ListResult[models.User]{}, err
	}
	return ListResult[models.User]{Items: envelope.Students, Pagination: envelope.Pagination}, nil
}

// Create adds an account.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*models.User, error) {
	var envelope userEnvelope
	if err := s.client.postJSON(ctx, "/user", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.User, nil
}

// Update modifies the account addressed by id.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*models.User, error) {
	var envelope userEnvelope
	if err := s.client.putJSON(ctx, "/user/"+url.PathEscape(id), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.User, nil
}

// Delete removes the account addressed by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.client.deleteJSON(ctx, "/user/"+url.PathEscape(id), nil)
}
