// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// SubjectService manages subject records (/subject).
type SubjectService struct {
	client *Client
}

// NewSubjectService returns a new SubjectService.
func NewSubjectService(client *Client) *SubjectService {
	return &SubjectService{client: client}
}

// SubjectInput is the editable field set. Grade is the flat grade id, the
// shape the API expects even when list responses return a populated document.
type SubjectInput struct {
	SubjectName string `json:"subjectName" validate:"required,min=2"`
	Status      bool   `json:"status"`
	Grade       string `json:"grade" validate:"required"`
}

// SubjectListOptions filters the subject list.
type SubjectListOptions struct {
	Page        int
	Limit       int
	SubjectName string
	Status      *bool
}

func (o SubjectListOptions) query() url.Values {
	return newListQuery().
		page(o.Page).
		limit(o.Limit).
		text("subjectName", o.SubjectName).
		status(o.Status).values
}

type subjectListEnvelope struct {
	Msg        string             `json:"msg"`
	Subjects   []models.Subject   `json:"subjects"`
	Pagination *models.Pagination `json:"pagination"`
}

type subjectEnvelope struct {
	Msg     string          `json:"msg"`
	Subject *models.Subject `json:"subject"`
}

// List fetches one page of subjects.
func (s *SubjectService) List(ctx context.Context, opts SubjectListOptions) (ListResult[models.Subject], error) {
	var envelope subjectListEnvelope
	if err := s.client.getJSON(ctx, "/subject", opts.query(), &envelope); err != nil {
		return ListResult[models.Subject]{}, err
	}
	return ListResult[models.Subject]{Items: envelope.Subjects, Pagination: envelope.Pagination}, nil
}

// Create adds a subject.
func (s *SubjectService) Create(ctx context.Context, input SubjectInput) (*models.Subject, error) {
	var envelope subjectEnvelope
	if err := s.client.postJSON(ctx, "/subject", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Subject, nil
}

// Update modifies the subject addressed by slug.
func (s *SubjectService) Update(ctx context.Context, slug string, input SubjectInput) (*models.Subject, error) {
	var envelope subjectEnvelope
	if err := s.client.putJSON(ctx, "/subject/"+url.PathEscape(slug), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Subject, nil
}

// Delete removes the subject addressed by slug.
func (s *SubjectService) Delete(ctx context.Context, slug string) error {
	return s.client.deleteJSON(ctx, "/subject/"+url.PathEscape(slug), nil)
}
