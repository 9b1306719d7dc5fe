// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api is the console's client for the platform REST API. The Client
// is the single chokepoint for outbound traffic: it attaches the bearer
// token, normalizes error envelopes, and handles authentication failures
// globally. One thin service per entity wraps it with typed operations.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TokenSource supplies the current access token and clears the session on
// authentication failure. *session.Store satisfies it.
type TokenSource interface {
	Token() string
	Clear() error
}

// Client performs HTTP calls against the platform API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// onAuthFailure runs after a 401 cleared the session. The console uses it
	// to force a full reload to the login entry point, since any in-memory
	// screen state is now stale.
	onAuthFailure func()
}

// New creates a Client for the given base URL (e.g. http://localhost:8000/api).
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// OnAuthFailure registers the hook invoked after a 401 response has cleared
// the session.
func (c *Client) OnAuthFailure(fn func()) {
	c.onAuthFailure = fn
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON issues a GET and decodes the response envelope into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// postJSON issues a POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	if err := checkInput(body); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// putJSON issues a PUT with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	if err := checkInput(body); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// inputValidator enforces the validate tags on the service payload structs.
// The screen drafts validate first with their own messages; this is the last
// check before bytes leave the process, catching payloads built in code.
var inputValidator = validator.New(validator.WithRequiredStructEnabled())

func checkInput(body any) error {
	if body == nil {
		return nil
	}
	err := inputValidator.Struct(body)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// Map payloads (status toggles) carry no rules.
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// deleteJSON issues a DELETE. out may be nil when the response body is
// irrelevant.
func (c *Client) deleteJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do builds, sends, and decodes one API call.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// postMultipart uploads a file as a multipart form (field name "file").
func (c *Client) postMultipart(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("api multipart: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("api multipart copy: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("api multipart close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, out)
}

// send applies cross-cutting headers, executes the request, and decodes the
// response. Every outbound call in the console funnels through here.
func (c *Client) send(req *http.Request, out any) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api read body: %w", err)
	}

	slog.Debug("api call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
		"request_id", requestID,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		// The whole session is invalid, not just this call. Clear it here so
		// no component can keep acting on a dead token, then let the UI reset.
		if err := c.tokens.Clear(); err != nil {
			slog.Error("session clear after 401 failed", "error", err)
		}
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
