// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session is the single source of truth for the console operator's
// identity: the platform access token and the user profile that came with it.
// Both live in one durable document behind a pluggable Storage so the pair is
// always persisted atomically: readers see both or neither.
//
// The store never validates token expiry itself; an expired token is
// discovered reactively when the API answers 401 and the adapter clears the
// session.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"educonsole/internal/models"
)

// Document is the persisted session payload: the two logical keys the console
// keeps in durable storage.
type Document struct {
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user,omitempty"`
}

// Store manages the session lifecycle. All methods are safe for concurrent
// use. Reads are served from memory; writes go through Storage first so a
// crash never leaves memory ahead of disk.
type Store struct {
	mu      sync.Mutex
	storage Storage
	doc     Document
	epoch   uint64 // bumped on Clear; stale login completions lose
}

// NewStore creates a session store and primes it from durable storage.
// A malformed persisted document is treated as no session rather than an
// error: the console fails closed to "not logged in".
func NewStore(storage Storage) (*Store, error) {
	s := &Store{storage: storage}

	raw, err := storage.Read()
	if err != nil {
		return nil, fmt.Errorf("session read: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.doc); err != nil {
			slog.Warn("discarding malformed session document", "error", err)
			s.doc = Document{}
		}
	}
	return s, nil
}

// Set persists the token and user profile atomically. Subsequent reads see
// both or neither.
func (s *Store) Set(token string, user *models.SessionUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(token, user)
}

// Epoch returns the current clear-epoch. Callers racing a login completion
// against a logout capture the epoch before the network round-trip and hand
// it back to SetIfEpoch.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// SetIfEpoch persists the session only if no Clear happened since the given
// epoch was observed. Returns false when the write was discarded; a logout
// or 401-clear always wins over an in-flight login (last writer wins).
func (s *Store) SetIfEpoch(epoch uint64, token string, user *models.SessionUser) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return false, nil
	}
	if err := s.write(token, user); err != nil {
		return false, err
	}
	return true, nil
}

// write persists and then caches the document. Callers hold s.mu.
func (s *Store) write(token string, user *models.SessionUser) error {
	doc := Document{AccessToken: token}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("session marshal user: %w", err)
		}
		doc.User = raw
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.storage.Write(raw); err != nil {
		return fmt.Errorf("session persist: %w", err)
	}

	s.doc = doc
	return nil
}

// Clear removes both the token and the user profile. Called on logout and on
// any authentication failure from the API.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.doc = Document{}
	if err := s.storage.Delete(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// Token returns the current access token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.AccessToken
}

// User returns the stored profile. Fails soft: a missing or malformed profile
// yields nil rather than an error, and role-gated UI then fails closed.
func (s *Store) User() *models.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.doc.User) == 0 {
		return nil
	}
	var user models.SessionUser
	if err := json.Unmarshal(s.doc.User, &user); err != nil {
		return nil
	}
	return &user
}

// Authenticated reports whether an access token is present. Token expiry is
// deliberately not checked here; an expired token surfaces as a 401 on the
// next API call, which clears the session.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// TokenExpiry inspects the access token's exp claim without verifying the
// signature. Display-only, never an authorization input. Returns false when
// the token is absent, opaque, or carries no expiry.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
