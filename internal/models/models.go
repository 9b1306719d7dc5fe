// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the record types mirrored from the platform API and
// the shared response-envelope pieces (pagination, references) used by every
// list screen in the console.
package models

import (
	"encoding/json"
	"fmt"
)

// Pagination is the server-echoed paging block attached to every list
// envelope. The console never fabricates one: a screen's paging state is
// whatever the server last returned.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSizes   int `json:"pageSizes"`
	TotalItems  int `json:"totalItems"`
}

// Ref is a reference to another record. The API returns references either as
// a bare id string or as a populated sub-document ({"_id": ..., "<x>Name": ...}),
// depending on the endpoint. Ref accepts both so edit forms can always
// denormalize down to the flat id the inputs expect.
type Ref struct {
	ID   string
	Name string
}

// refNameKeys lists the display-field names the API uses across entities,
// in lookup order.
var refNameKeys = []string{
	"gradeName", "subjectName", "courseName", "chapterName",
	"categoryName", "fullName", "title",
}

// UnmarshalJSON decodes either "abc123" or {"_id":"abc123","gradeName":"Lớp 1"}.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Name = ""
		return nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("reference is neither id nor document: %w", err)
	}

	if id, ok := doc["_id"].(string); ok {
		r.ID = id
	}
	for _, key := range refNameKeys {
		if name, ok := doc[key].(string); ok && name != "" {
			r.Name = name
			break
		}
	}
	return nil
}

// MarshalJSON always emits the flat id, which is the shape mutation payloads use.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Name == ""
}
