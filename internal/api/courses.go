// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// CourseService manages course records (/course).
type CourseService struct {
	client *Client
}

// NewCourseService returns a new CourseService.
func NewCourseService(client *Client) *CourseService {
	return &CourseService{client: client}
}

// SaleInput is an optional course discount.
type SaleInput struct {
	SaleType      models.SaleType `json:"saleType" validate:"required,oneof=percent fixed"`
	Value         float64         `json:"value" validate:"gte=0"`
	SaleStartDate string          `json:"saleStartDate,omitempty"`
	SaleEndDate   string          `json:"saleEndDate,omitempty"`
}

// CourseInput is the editable field set. Subject is the flat subject id.
// Rating, student counts, and the slug are server-computed and never sent.
type CourseInput struct {
	CourseName    string       `json:"courseName" validate:"required,min=2"`
	Description   string       `json:"description,omitempty"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	Price         float64      `json:"price" validate:"gte=0"`
	Sale          *SaleInput   `json:"sale,omitempty"`
	Status        bool         `json:"status"`
	Level         models.Level `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	TotalDuration int          `json:"totalDuration,omitempty" validate:"gte=0"`
	Subject       string       `json:"subject" validate:"required"`
}

// CourseListOptions filters the course list.
type CourseListOptions struct {
	Page       int
	Limit      int
	CourseName string
	Status     *bool
}

func (o CourseListOptions) query() url.Values {
	return newListQuery().
		page(o.Page).
		limit(o.Limit).
		text("courseName", o.CourseName).
		status(o.Status).values
}

type courseListEnvelope struct {
	Msg        string             `json:"msg"`
	Courses    []models.Course    `json:"courses"`
	Pagination *models.Pagination `json:"pagination"`
}

type courseEnvelope struct {
	Msg    string         `json:"msg"`
	Course *models.Course `json:"course"`
}

// List fetches one page of courses.
func (s *CourseService) List(ctx context.Context, opts CourseListOptions) (ListResult[models.Course], error) {
	var envelope courseListEnvelope
	if err := s.client.getJSON(ctx, "/course", opts.query(), &envelope); err != nil {
		return ListResult[models.Course]{}, err
	}
	return ListResult[models.Course]{Items: envelope.Courses, Pagination: envelope.Pagination}, nil
}

// Get fetches a single course by slug.
func (s *CourseService) Get(ctx context.Context, slug string) (*models.Course, error) {
	var envelope courseEnvelope
	if err := s.client.getJSON(ctx, "/course/"+url.PathEscape(slug), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Course, nil
}

// Create adds a course.
func (s *CourseService) Create(ctx context.Context, input CourseInput) (*models.Course, error) {
	var envelope courseEnvelope
	if err := s.client.postJSON(ctx, "/course", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Course, nil
}

// Update modifies the course addressed by slug.
func (s *CourseService) Update(ctx context.Context, slug string, input CourseInput) (*models.Course, error) {
	var envelope courseEnvelope
	if err := s.client.putJSON(ctx, "/course/"+url.PathEscape(slug), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Course, nil
}

// Delete removes the course addressed by slug.
func (s *CourseService) Delete(ctx context.Context, slug string) error {
	return s.client.deleteJSON(ctx, "/course/"+url.PathEscape(slug), nil)
}
