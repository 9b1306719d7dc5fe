// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// GradeService manages grade records (/grade).
type GradeService struct {
	client *Client
}

// NewGradeService returns a new GradeService.
func NewGradeService(client *Client) *GradeService {
	return &GradeService{client: client}
}

// GradeInput is the editable field set for create and update.
type GradeInput struct {
	GradeName string `json:"gradeName" validate:"required,min=2"`
	Status    bool   `json:"status"`
}

// GradeListOptions filters the grade list. Zero-valued fields are omitted
// from the outgoing query.
type GradeListOptions struct {
	Page      int
	Limit     int
	GradeName string
	Status    *bool
}

func (o GradeListOptions) query() url.Values {
	return newListQuery().
		page(o.Page).
		limit(o.Limit).
		text("gradeName", o.GradeName).
		status(o.Status).values
}

type gradeListEnvelope struct {
	Msg        string             `json:"msg"`
	Grades     []models.Grade     `json:"grades"`
	Pagination *models.Pagination `json:"pagination"`
}

type gradeEnvelope struct {
	Msg   string        `json:"msg"`
	Grade *models.Grade `json:"grade"`
}

// List fetches one page of grades.
func (s *GradeService) List(ctx context.Context, opts GradeListOptions) (ListResult[models.Grade], error) {
	var envelope gradeListEnvelope
	if err := s.client.getJSON(ctx, "/grade", opts.query(), &envelope); err != nil {
		return ListResult[models.Grade]{}, err
	}
	return ListResult[models.Grade]{Items: envelope.Grades, Pagination: envelope.Pagination}, nil
}

// Create adds a grade and returns the server's canonical record.
func (s *GradeService) Create(ctx context.Context, input GradeInput) (*models.Grade, error) {
	var envelope gradeEnvelope
	if err := s.client.postJSON(ctx, "/grade", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Grade, nil
}

// Update modifies the grade addressed by slug.
func (s *GradeService) Update(ctx context.Context, slug string, input GradeInput) (*models.Grade, error) {
	var envelope gradeEnvelope
	if err := s.client.putJSON(ctx, "/grade/"+url.PathEscape(slug), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Grade, nil
}

// Delete removes the grade addressed by slug.
func (s *GradeService) Delete(ctx context.Context, slug string) error {
	return s.client.deleteJSON(ctx, "/grade/"+url.PathEscape(slug), nil)
}
