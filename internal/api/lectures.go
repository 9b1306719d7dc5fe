// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// LectureService manages the lectures nested under a chapter (/lecture).
// Lecture lists are scoped to one chapter and come back unpaginated.
type LectureService struct {
	client *Client
}

// NewLectureService returns a new LectureService.
func NewLectureService(client *Client) *LectureService {
	return &LectureService{client: client}
}

// LectureInput is the editable field set. ChapterSlug ties a new lecture to
// its chapter; updates address the lecture by id instead. VideoURL is the
// URL handed back by the upload endpoint.
type LectureInput struct {
	LectureName string `json:"lectureName" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Duration    int    `json:"duration,omitempty" validate:"gte=0"`
	Order       int    `json:"order" validate:"gte=0"`
	Status      bool   `json:"status"`
	ChapterSlug string `json:"chapterSlug,omitempty"`
}

type lectureListEnvelope struct {
	Msg      string           `json:"msg"`
	Lectures []models.Lecture `json:"lectures"`
}

type lectureEnvelope struct {
	Msg     string          `json:"msg"`
	Lecture *models.Lecture `json:"lecture"`
}

// ListByChapter fetches every lecture of the chapter addressed by id.
func (s *LectureService) ListByChapter(ctx context.Context, chapterID string) (ListResult[models.Lecture], error) {
	var envelope lectureListEnvelope
	if err := s.client.getJSON(ctx, "/lecture/chapter/"+url.PathEscape(chapterID), nil, &envelope); err != nil {
		return ListResult[models.Lecture]{}, err
	}
	return ListResult[models.Lecture]{Items: envelope.Lectures}, nil
}

// Create adds a lecture to the chapter named by input.ChapterSlug.
func (s *LectureService) Create(ctx context.Context, input LectureInput) (*models.Lecture, error) {
	var envelope lectureEnvelope
	if err := s.client.postJSON(ctx, "/lecture", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Lecture, nil
}

// Update modifies the lecture addressed by id.
func (s *LectureService) Update(ctx context.Context, id string, input LectureInput) (*models.Lecture, error) {
	var envelope lectureEnvelope
	if err := s.client.putJSON(ctx, "/lecture/"+url.PathEscape(id), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Lecture, nil
}

// Delete removes the lecture addressed by id.
func (s *LectureService) Delete(ctx context.Context, id string) error {
	return s.client.deleteJSON(ctx, "/lecture/"+url.PathEscape(id), nil)
}
