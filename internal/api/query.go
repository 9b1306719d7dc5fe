// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"net/url"
	"strconv"

	"educonsole/internal/models"
)

// ListResult is the decoded list envelope for one page of records.
// Pagination is nil for endpoints that return unpaginated collections
// (nested chapter/lecture lists).
type ListResult[T any] struct {
	Items      []T
	Pagination *models.Pagination
}

// listQuery accumulates query parameters, omitting unset fields entirely.
// The API treats an absent parameter and a filter "off" state the same, and
// never receives empty strings or nulls.
type listQuery struct {
	values url.Values
}

func newListQuery() *listQuery {
	return &listQuery{values: url.Values{}}
}

// page adds the 1-based page number when set.
func (q *listQuery) page(page int) *listQuery {
	if page > 0 {
		q.values.Set("page", strconv.Itoa(page))
	}
	return q
}

// limit adds the page size when set.
func (q *listQuery) limit(limit int) *listQuery {
	if limit > 0 {
		q.values.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// text adds a substring filter when non-empty.
func (q *listQuery) text(key, value string) *listQuery {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

// status adds the tri-state boolean filter; nil means "all" and is omitted.
func (q *listQuery) status(status *bool) *listQuery {
	if status != nil {
		q.values.Set("status", strconv.FormatBool(*status))
	}
	return q
}
