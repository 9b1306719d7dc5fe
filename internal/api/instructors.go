// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// InstructorService manages instructor records and the application review
// workflow (/instructor). Review actions carry no body; the server keys
// everything off the record id in the path.
type InstructorService struct {
	client *Client
}

// NewInstructorService returns a new InstructorService.
func NewInstructorService(client *Client) *InstructorService {
	return &InstructorService{client: client}
}

// InstructorRequestInput creates an account together with a pending
// instructor application.
type InstructorRequestInput struct {
	FullName string `json:"fullName" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// InstructorListOptions filters the instructor and request lists.
type InstructorListOptions struct {
	Page     int
	Limit    int
	FullName string
}

func (o InstructorListOptions) query() url.Values {
	return newListQuery().
		page(o.Page).
		limit(o.Limit).
		text("fullName", o.FullName).values
}

type instructorListEnvelope struct {
	Msg         string              `json:"msg"`
	Instructors []models.Instructor `json:"instructors"`
	Pagination  *models.Pagination  `json:"pagination"`
}

// instructorRequestListEnvelope uses "users" because pending applications are
// still plain accounts on the server side.
type instructorRequestListEnvelope struct {
	Msg        string              `json:"msg"`
	Users      []models.Instructor `json:"users"`
	Pagination *models.Pagination  `json:"pagination"`
}

type instructorEnvelope struct {
	Msg        string             `json:"msg"`
	Instructor *models.Instructor `json:"instructor"`
}

// List fetches one page of approved instructors.
func (s *InstructorService) List(ctx context.Context, opts InstructorListOptions) (ListResult[models.Instructor], error) {
	var envelope instructorListEnvelope
	if err := s.client.getJSON(ctx, "/instructor", opts.query(), &envelope); err != nil {
		return ListResult[models.Instructor]{}, err
	}
	return ListResult[models.Instructor]{Items: envelope.Instructors, Pagination: envelope.Pagination}, nil
}

// ListRequests fetches one page of pending instructor applications.
func (s *InstructorService) ListRequests(ctx context.Context, opts InstructorListOptions) (ListResult[models.Instructor], error) {
	var envelope instructorRequestListEnvelope
	if err := s.client.getJSON(ctx, "/instructor/request-instructor", opts.query(), &envelope); err != nil {
		return ListResult[models.Instructor]{}, err
	}
	return ListResult[models.Instructor]{Items: envelope.Users, Pagination: envelope.Pagination}, nil
}

// Get fetches a single instructor by id.
func (s *InstructorService) Get(ctx context.Context, id string) (*models.Instructor, error) {
	var envelope instructorEnvelope
	if err := s.client.getJSON(ctx, "/instructor/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Instructor, nil
}

// Request submits a new instructor application.
func (s *InstructorService) Request(ctx context.Context, input InstructorRequestInput) error {
	var envelope struct {
		Msg string `json:"msg"`
	}
	return s.client.postJSON(ctx, "/instructor/request", input, &envelope)
}

// Approve accepts the application addressed by id.
func (s *InstructorService) Approve(ctx context.Context, id string) error {
	return s.review(ctx, "/instructor/approve/"+url.PathEscape(id))
}

// Reject declines the application addressed by id.
func (s *InstructorService) Reject(ctx context.Context, id string) error {
	return s.review(ctx, "/instructor/reject/"+url.PathEscape(id))
}

// Cancel revokes a pending application.
func (s *InstructorService) Cancel(ctx context.Context, id string) error {
	return s.review(ctx, "/instructor/cancel/"+url.PathEscape(id))
}

func (s *InstructorService) review(ctx context.Context, path string) error {
	var envelope struct {
		Msg string `json:"msg"`
	}
	return s.client.putJSON(ctx, path, nil, &envelope)
}
