// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"encoding/json"

	"educonsole/internal/models"
)

// AuthService signs operators in and out against /auth. Login is the one
// request that runs without a bearer token.
type AuthService struct {
	client *Client
}

// NewAuthService returns a new AuthService.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the self-registration payload. New accounts start as
// students; roles are assigned afterwards from the user screen.
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResult carries the token and profile exactly as the server sent them.
// User stays raw so the session layer can persist it verbatim and fail soft
// on shapes it does not recognize.
type LoginResult struct {
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user"`
}

// Profile decodes the raw user document.
func (r *LoginResult) Profile() (*models.SessionUser, error) {
	var user models.SessionUser
	if err := json.Unmarshal(r.User, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an access token.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := s.client.postJSON(ctx, "/auth/login", creds, &result); err != nil {
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, ErrMalformedResponse
	}
	return &result, nil
}

// Register creates a new student account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	var envelope struct {
		Msg string `json:"msg"`
	}
	return s.client.postJSON(ctx, "/auth/register", input, &envelope)
}
