// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// ChapterService manages the chapters nested under a course (/chapter).
// Chapter lists are scoped to one course and come back unpaginated.
type ChapterService struct {
	client *Client
}

// NewChapterService returns a new ChapterService.
func NewChapterService(client *Client) *ChapterService {
	return &ChapterService{client: client}
}

// ChapterInput is the editable field set. CourseSlug ties a new chapter to
// its course; updates address the chapter by id instead.
type ChapterInput struct {
	ChapterName string `json:"chapterName" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order" validate:"gte=0"`
	Status      bool   `json:"status"`
	CourseSlug  string `json:"courseSlug,omitempty"`
}

type chapterListEnvelope struct {
	Msg      string           `json:"msg"`
	Chapters []models.Chapter `json:"chapters"`
}

type chapterEnvelope struct {
	Msg     string          `json:"msg"`
	Chapter *models.Chapter `json:"chapter"`
}

// ListByCourse fetches every chapter of the course addressed by slug.
func (s *ChapterService) ListByCourse(ctx context.Context, courseSlug string) (ListResult[models.Chapter], error) {
	var envelope chapterListEnvelope
	if err := s.client.getJSON(ctx, "/chapter/"+url.PathEscape(courseSlug), nil, &envelope); err != nil {
		return ListResult[models.Chapter]{}, err
	}
	return ListResult[models.Chapter]{Items: envelope.Chapters}, nil
}

// Create adds a chapter to the course named by input.CourseSlug.
func (s *ChapterService) Create(ctx context.Context, input ChapterInput) (*models.Chapter, error) {
	var envelope chapterEnvelope
	if err := s.client.postJSON(ctx, "/chapter", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Chapter, nil
}

// Update modifies the chapter addressed by id.
func (s *ChapterService) Update(ctx context.Context, id string, input ChapterInput) (*models.Chapter, error) {
	var envelope chapterEnvelope
	if err := s.client.putJSON(ctx, "/chapter/"+url.PathEscape(id), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Chapter, nil
}

// Delete removes the chapter addressed by id.
func (s *ChapterService) Delete(ctx context.Context, id string) error {
	return s.client.deleteJSON(ctx, "/chapter/"+url.PathEscape(id), nil)
}
