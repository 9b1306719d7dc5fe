// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks the global 401 path. By the time a caller sees it the
// session has already been cleared; screens should not try to recover, the
// auth-failure hook owns the reset.
var ErrUnauthorized = errors.New("api: authentication failed")

// ErrMalformedResponse marks a 2xx response whose body did not match the
// expected envelope. Surfaced instead of letting missing fields leak into
// the UI as zero values.
var ErrMalformedResponse = errors.New("api: malformed response")

// ErrInvalidInput marks a payload that failed boundary validation; no request
// was sent to the platform.
var ErrInvalidInput = errors.New("api: invalid input")

// Error is a normalized non-2xx API response: the status code plus the
// server's msg, falling back to a generic transport message.
type Error struct {
	Status int
	Msg    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Msg, e.Status)
}

// Message returns the user-facing text for notifications.
func (e *Error) Message() string {
	return e.Msg
}

// IsNotFound reports whether the server answered 404.
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// errorEnvelope is the standard error body: {"msg": "..."}.
type errorEnvelope struct {
	Msg string `json:"msg"`
}

// newAPIError extracts the server's msg from a non-2xx body.
func newAPIError(status int, body []byte) *Error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Msg != "" {
		return &Error{Status: status, Msg: envelope.Msg}
	}
	return &Error{Status: status, Msg: genericMessage(status)}
}

// genericMessage is the fallback when the server sent no msg field.
func genericMessage(status int) string {
	if status >= 500 {
		return "the server encountered an error"
	}
	return "the request could not be completed"
}

// UserMessage maps any service-layer error to notification text. API errors
// carry the server's msg; everything else gets a generic transport message.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Your session expired. Sign in again."
	case errors.Is(err, ErrInvalidInput):
		return "Check the form for missing or invalid fields."
	case errors.Is(err, ErrMalformedResponse):
		return "the server returned an unexpected response"
	}
	return "could not reach the server"
}
