// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"io"
)

// UploadService pushes media to /upload and returns the hosted URL for use
// in course, lecture, and post payloads.
type UploadService struct {
	client *Client
}

// NewUploadService returns a new UploadService.
func NewUploadService(client *Client) *UploadService {
	return &UploadService{client: client}
}

type uploadEnvelope struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// UploadImage streams an image and returns its hosted URL.
func (s *UploadService) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.upload(ctx, "/upload/image", filename, r)
}

// UploadVideo streams a video and returns its hosted URL.
func (s *UploadService) UploadVideo(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.upload(ctx, "/upload/video", filename, r)
}

func (s *UploadService) upload(ctx context.Context, path, filename string, r io.Reader) (string, error) {
	var envelope uploadEnvelope
	if err := s.client.postMultipart(ctx, path, filename, r, &envelope); err != nil {
		return "", err
	}
	if envelope.URL == "" {
		return "", ErrMalformedResponse
	}
	return envelope.URL, nil
}
