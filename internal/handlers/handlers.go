// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the console's HTTP handlers: authentication,
// the dashboard, and one configured resource screen per platform entity.
package handlers

import (
	"sync"

	"educonsole/internal/render"
	"educonsole/internal/session"
)

// flashQueue holds one-time notifications across a redirect. The console
// serves a single operator, so a process-local queue is all that's needed.
type flashQueue struct {
	mu      sync.Mutex
	pending []render.Flash
}

func (q *flashQueue) push(kind, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, render.Flash{Type: kind, Message: message})
}

// drain returns and clears the pending flashes.
func (q *flashQueue) drain() []render.Flash {
	q.mu.Lock()
	defer q.mu.Unlock()
	flashes := q.pending
	q.pending = nil
	return flashes
}

// base assembles the PageData shared by all signed-in pages.
func basePage(title, section string, store *session.Store, flashes *flashQueue, data map[string]any) *render.PageData {
	if data == nil {
		data = map[string]any{}
	}
	return &render.PageData{
		Title:   title,
		Section: section,
		User:    store.User(),
		Data:    data,
		Flashes: flashes.drain(),
	}
}
