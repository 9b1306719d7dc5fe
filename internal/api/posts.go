// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// PostService manages blog articles (/post).
type PostService struct {
	client *Client
}

// NewPostService returns a new PostService.
func NewPostService(client *Client) *PostService {
	return &PostService{client: client}
}

// PostInput is the editable field set. Category is the flat category id and
// Thumbnail is the URL handed back by the upload endpoint.
type PostInput struct {
	Title        string `json:"title" validate:"required,min=2"`
	Content      string `json:"content" validate:"required"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ThumbnailAlt string `json:"thumbnailAlt,omitempty"`
	Status       bool   `json:"status"`
	IsFeatured   bool   `json:"isFeatured"`
}

// PostListOptions filters the article list.
type PostListOptions struct {
	Page   int
	Limit  int
	Title  string
	Status *bool
}

func (o PostListOptions) query() url.Values {
	return newListQuery().
		page(o.Page).
		limit(o.Limit).
		text("title", o.Title).
		status(o.Status).values
}

type postListEnvelope struct {
	Msg        string             `json:"msg"`
	Posts      []models.Post      `json:"posts"`
	Pagination *models.Pagination `json:"pagination"`
}

type postEnvelope struct {
	Msg  string       `json:"msg"`
	Post *models.Post `json:"post"`
}

// List fetches one page of articles.
func (s *PostService) List(ctx context.Context, opts PostListOptions) (ListResult[models.Post], error) {
	var envelope postListEnvelope
	if err := s.client.getJSON(ctx, "/post", opts.query(), &envelope); err != nil {
		return ListResult[models.Post]{}, err
	}
	return ListResult[models.Post]{Items: envelope.Posts, Pagination: envelope.Pagination}, nil
}

// Get fetches a single article by slug.
func (s *PostService) Get(ctx context.Context, slug string) (*models.Post, error) {
	var envelope postEnvelope
	if err := s.client.getJSON(ctx, "/post/"+url.PathEscape(slug), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Post, nil
}

// Create adds an article.
func (s *PostService) Create(ctx context.Context, input PostInput) (*models.Post, error) {
	var envelope postEnvelope
	if err := s.client.postJSON(ctx, "/post", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Post, nil
}

// Update modifies the article addressed by slug.
func (s *PostService) Update(ctx context.Context, slug string, input PostInput) (*models.Post, error) {
	var envelope postEnvelope
	if err := s.client.putJSON(ctx, "/post/"+url.PathEscape(slug), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.Post, nil
}

// SetStatus flips only the publish flag of the article addressed by slug.
func (s *PostService) SetStatus(ctx context.Context, slug string, status bool) error {
	var envelope struct {
		Msg string `json:"msg"`
	}
	body := map[string]bool{"status": status}
	return s.client.putJSON(ctx, "/post/"+url.PathEscape(slug)+"/status", body, &envelope)
}

// Delete removes the article addressed by slug.
func (s *PostService) Delete(ctx context.Context, slug string) error {
	return s.client.deleteJSON(ctx, "/post/"+url.PathEscape(slug), nil)
}
