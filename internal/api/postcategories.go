// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/url"

	"educonsole/internal/models"
)

// PostCategoryService manages blog categories (/post-category).
type PostCategoryService struct {
	client *Client
}

// NewPostCategoryService returns a new PostCategoryService.
func NewPostCategoryService(client *Client) *PostCategoryService {
	return &PostCategoryService{client: client}
}

// PostCategoryInput is the editable field set.
type PostCategoryInput struct {
	CategoryName string `json:"categoryName" validate:"required,min=2"`
	Status       bool   `json:"status"`
}

// PostCategoryListOptions filters the category list.
type PostCategoryListOptions struct {
	Page         int
	Limit        int
	CategoryName string
	Status       *bool
}

func (o PostCategoryListOptions) query() url.Values {
	return newListQuery().
		page(o.Page).
		limit(o.Limit).
		text("categoryName", o.CategoryName).
		status(o.Status).values
}

type postCategoryListEnvelope struct {
	Msg            string                `json:"msg"`
	PostCategories []models.PostCategory `json:"postCategories"`
	Pagination     *models.Pagination    `json:"pagination"`
}

type postCategoryEnvelope struct {
	Msg          string               `json:"msg"`
	PostCategory *models.PostCategory `json:"postCategory"`
}

// List fetches one page of categories.
func (s *PostCategoryService) List(ctx context.Context, opts PostCategoryListOptions) (ListResult[models.PostCategory], error) {
	var envelope postCategoryListEnvelope
	if err := s.client.getJSON(ctx, "/post-category", opts.query(), &envelope); err != nil {
		return ListResult[models.PostCategory]{}, err
	}
	return ListResult[models.PostCategory]{Items: envelope.PostCategories, Pagination: envelope.Pagination}, nil
}

// Create adds a category.
func (s *PostCategoryService) Create(ctx context.Context, input PostCategoryInput) (*models.PostCategory, error) {
	var envelope postCategoryEnvelope
	if err := s.client.postJSON(ctx, "/post-category", input, &envelope); err != nil {
		return nil, err
	}
	return envelope.PostCategory, nil
}

// Update modifies the category addressed by slug.
func (s *PostCategoryService) Update(ctx context.Context, slug string, input PostCategoryInput) (*models.PostCategory, error) {
	var envelope postCategoryEnvelope
	if err := s.client.putJSON(ctx, "/post-category/"+url.PathEscape(slug), input, &envelope); err != nil {
		return nil, err
	}
	return envelope.PostCategory, nil
}

// SetStatus flips only the visibility flag of the category addressed by slug.
func (s *PostCategoryService) SetStatus(ctx context.Context, slug string, status bool) error {
	var envelope struct {
		Msg string `json:"msg"`
	}
	body := map[string]bool{"status": status}
	return s.client.putJSON(ctx, "/post-category/"+url.PathEscape(slug)+"/status", body, &envelope)
}

// Delete removes the category addressed by slug.
func (s *PostCategoryService) Delete(ctx context.Context, slug string) error {
	return s.client.deleteJSON(ctx, "/post-category/"+url.PathEscape(slug), nil)
}
