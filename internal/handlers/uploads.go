// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"educonsole/internal/api"
	"educonsole/internal/slug"
)

// maxUploadBytes caps an incoming media upload before it is streamed to the
// platform. Videos dominate, so the cap is generous.
const maxUploadBytes = 512 << 20

// Uploads proxies media uploads to the platform and returns the hosted URL
// as JSON, for the course, lecture, and article forms to paste into their
// URL inputs.
type Uploads struct {
	service *api.UploadService
}

// NewUploads creates the upload handler group.
func NewUploads(service *api.UploadService) *Uploads {
	return &Uploads{service: service}
}

// Image accepts a multipart "file" part and returns {"url": ...}.
func (u *Uploads) Image(w http.ResponseWriter, r *http.Request) {
	u.proxy(w, r, u.service.UploadImage)
}

// Video accepts a multipart "file" part and returns {"url": ...}.
func (u *Uploads) Video(w http.ResponseWriter, r *http.Request) {
	u.proxy(w, r, u.service.UploadVideo)
}

func (u *Uploads) proxy(w http.ResponseWriter, r *http.Request, send func(ctx context.Context, filename string, body io.Reader) (string, error)) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "Attach a file to upload."})
		return
	}
	defer file.Close()

	filename := safeFilename(header.Filename)
	url, err := send(r.Context(), filename, file)
	if err != nil {
		slog.Warn("upload failed", "filename", filename, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"msg": api.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// safeFilename slugs the browser-supplied name so the platform never sees
// spaces, quotes, or path fragments in the multipart header.
func safeFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	stem := slug.Generate(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if stem == "" {
		stem = "upload"
	}
	return stem + ext
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
