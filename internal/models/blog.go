// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// PostCategory groups blog posts.
type PostCategory struct {
	ID           string `json:"_id"`
	Slug         string `json:"slug"`
	CategoryName string `json:"categoryName"`
	Status       bool   `json:"status"`
	CreatedBy    Ref    `json:"createdBy"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// Post is a blog article. Category may arrive populated or as a bare id.
type Post struct {
	ID           string `json:"_id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Description  string `json:"description,omitempty"`
	Category     Ref    `json:"category"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	ThumbnailAlt string `json:"thumbnailAlt,omitempty"`
	File         string `json:"file,omitempty"`
	Status       bool   `json:"status"`
	IsFeatured   bool   `json:"isFeatured,omitempty"`
	CreatedBy    Ref    `json:"createdBy"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}
