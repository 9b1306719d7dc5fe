// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing drives the console's paginated tables: a generic controller
// that owns one screen's query state and fetch lifecycle, and a filter bar
// that debounces keyword input in front of it.
package listing

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"educonsole/internal/api"
	"educonsole/internal/models"
)

// DefaultPageSize is applied when a query carries no explicit limit.
const DefaultPageSize = 10

// Filters is the composed filter state a screen sends with every list fetch.
// Status is tri-state: nil means "all" and is omitted from the request.
type Filters struct {
	Keyword string
	Status  *bool
}

// Query is the full input state of one paginated table.
type Query struct {
	Page     int
	PageSize int
	Filters  Filters
}

// normalize fills defaults so every fetch sees a usable query.
func (q Query) normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Encode mirrors the query into URL parameters so a screen's state survives
// reloads and can be shared. Default-valued fields are omitted.
func (q Query) Encode() url.Values {
	q = q.normalize()
	values := url.Values{}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != DefaultPageSize {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Filters.Keyword != "" {
		values.Set("q", q.Filters.Keyword)
	}
	if q.Filters.Status != nil {
		values.Set("status", strconv.FormatBool(*q.Filters.Status))
	}
	return values
}

// ParseQuery rebuilds a Query from URL parameters, ignoring anything
// malformed.
func ParseQuery(values url.Values) Query {
	q := Query{Page: 1, PageSize: DefaultPageSize}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if size, err := strconv.Atoi(values.Get("pageSize")); err == nil && size > 0 {
		q.PageSize = size
	}
	q.Filters.Keyword = values.Get("q")
	if status, err := strconv.ParseBool(values.Get("status")); err == nil {
		q.Filters.Status = &status
	}
	return q
}

// Snapshot is a point-in-time copy of a controller's state, safe to hand to
// a template while fetches continue in the background.
type Snapshot[T any] struct {
	Records    []T
	Query      Query
	Pagination models.Pagination
	Loading    bool
	Err        string
	Version    uint64

	// Unauthorized reports that the latest fetch hit the global 401 path.
	// The session is already cleared; the screen must leave for the login
	// page instead of rendering anything.
	Unauthorized bool
}

// FetchFunc loads one page for the given query. Implementations wrap an api
// service List call.
type FetchFunc[T any] func(ctx context.Context, q Query) (api.ListResult[T], error)

// Controller owns the list state of one console screen. All input paths go
// through Apply, which supersedes any in-flight fetch so the newest input
// always wins regardless of response ordering.
type Controller[T any] struct {
	fetch FetchFunc[T]

	mu           sync.Mutex
	query        Query
	records      []T
	pagination   models.Pagination
	errMsg       string
	unauthorized bool
	generation   uint64
	cancel       context.CancelFunc
	done         chan struct{}
	closed       bool
}

// NewController creates a controller around a fetch closure. No fetch runs
// until the first Apply or Invalidate.
func NewController[T any](fetch FetchFunc[T]) *Controller[T] {
	return &Controller[T]{
		fetch: fetch,
		query: Query{Page: 1, PageSize: DefaultPageSize},
	}
}

// Apply replaces the query and starts a fetch for it, cancelling whatever was
// in flight. Changing the page size resets the page to 1 since the old page
// index is meaningless under a new size.
func (c *Controller[T]) Apply(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	q = q.normalize()
	if q.PageSize != c.query.PageSize {
		q.Page = 1
	}
	c.query = q
	c.startLocked()
}

// SetPage navigates to another page under the current filters.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	q.Page = page
	c.Apply(q)
}

// SetPageSize changes the page size; Apply resets the page.
func (c *Controller[T]) SetPageSize(size int) {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	q.PageSize = size
	c.Apply(q)
}

// SetFilters replaces the filters and returns to the first page, the only
// page guaranteed to exist under the new filter set.
func (c *Controller[T]) SetFilters(f Filters) {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	q.Filters = f
	q.Page = 1
	c.Apply(q)
}

// Invalidate refetches the current query. Called after every mutation; the
// server recomputes derived fields, so the console never patches records
// locally.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.startLocked()
}

// startLocked begins a fetch for c.query. Caller holds c.mu.
func (c *Controller[T]) startLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.generation++
	gen := c.generation
	q := c.query
	done := make(chan struct{})
	c.done = done

	go func() {
		defer close(done)
		result, err := c.fetch(ctx, q)

		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			// A newer input superseded this fetch; its result must not land.
			return
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			if errors.Is(err, api.ErrUnauthorized) {
				// The session is gone; there is nothing to render stale. The
				// screen redirects to the login page on the next snapshot.
				c.unauthorized = true
				c.errMsg = ""
				slog.Warn("list fetch unauthorized", "page", q.Page)
				return
			}
			// Keep the previous records on screen; the error banner explains
			// why they are stale.
			c.errMsg = api.UserMessage(err)
			slog.Warn("list fetch failed", "page", q.Page, "error", err)
			return
		}
		c.records = result.Items
		c.errMsg = ""
		c.unauthorized = false
		if result.Pagination != nil {
			c.pagination = *result.Pagination
		} else {
			c.pagination = models.Pagination{
				CurrentPage: 1,
				TotalPages:  1,
				PageSizes:   len(result.Items),
				TotalItems:  len(result.Items),
			}
		}
	}()
}

// Snapshot copies the current state for rendering.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]T, len(c.records))
	copy(records, c.records)
	loading := false
	if c.done != nil {
		select {
		case <-c.done:
		default:
			loading = true
		}
	}
	return Snapshot[T]{
		Records:      records,
		Query:        c.query,
		Pagination:   c.pagination,
		Loading:      loading,
		Err:          c.errMsg,
		Version:      c.generation,
		Unauthorized: c.unauthorized,
	}
}

// Query returns the current input state.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Wait blocks until the most recently applied input has settled, looping if
// newer inputs supersede while waiting. Returns the context's error on
// cancellation.
func (c *Controller[T]) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		done := c.done
		gen := c.generation
		c.mu.Unlock()

		if done == nil {
			return nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		c.mu.Lock()
		settled := gen == c.generation
		c.mu.Unlock()
		if settled {
			return nil
		}
	}
}

// Close cancels any in-flight fetch and rejects further input.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
