// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"educonsole/internal/api"
	"educonsole/internal/forms"
	"educonsole/internal/listing"
	"educonsole/internal/markdown"
	"educonsole/internal/models"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// PostDraft is the editable state of the article form.
type PostDraft struct {
	Title        string `validate:"required,min=2"`
	Content      string `validate:"required"`
	Description  string
	Category     string
	Thumbnail    string
	ThumbnailAlt string
	Status       bool
	IsFeatured   bool
}

// NewPostScreen wires the article list and form to /admin/posts.
func NewPostScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.PostService, categories *api.PostCategoryService) *Screen[models.Post, PostDraft] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.Post], error) {
		return svc.List(ctx, api.PostListOptions{
			Page:   q.Page,
			Limit:  q.PageSize,
			Title:  q.Filters.Keyword,
			Status: q.Filters.Status,
		})
	}

	spec := &FormSpec[models.Post, PostDraft]{
		NewTitle:  "New article",
		EditTitle: "Edit article",
		Defaults:  func() PostDraft { return PostDraft{} },
		FromRecord: func(p models.Post) PostDraft {
			return PostDraft{
				Title:        p.Title,
				Content:      p.Content,
				Description:  p.Description,
				Category:     p.Category.ID,
				Thumbnail:    p.Thumbnail,
				ThumbnailAlt: p.ThumbnailAlt,
				Status:       p.Status,
				IsFeatured:   p.IsFeatured,
			}
		},
		FromForm: func(values map[string][]string) PostDraft {
			return PostDraft{
				Title:        fv(values, "title"),
				Content:      fv(values, "content"),
				Description:  fv(values, "description"),
				Category:     fv(values, "category"),
				Thumbnail:    fv(values, "thumbnail"),
				ThumbnailAlt: fv(values, "thumbnailAlt"),
				Status:       fvBool(values, "status"),
				IsFeatured:   fvBool(values, "isFeatured"),
			}
		},
		Fields: func(ctx context.Context, mode forms.Mode, d PostDraft, errs map[string]string) []render.Field {
			return []render.Field{
				{Name: "title", Label: "Title", Type: "text", Value: d.Title, Required: true, Error: errs["Title"]},
				{Name: "description", Label: "Description", Type: "textarea", Value: d.Description},
				{Name: "content", Label: "Content", Type: "textarea", Value: d.Content, Required: true, Error: errs["Content"]},
				{Name: "category", Label: "Category", Type: "select", Options: categoryOptions(ctx, categories, d.Category)},
				{Name: "thumbnail", Label: "Thumbnail URL", Type: "text", Value: d.Thumbnail, Hint: "Use the image upload to get a URL."},
				{Name: "thumbnailAlt", Label: "Thumbnail alt text", Type: "text", Value: d.ThumbnailAlt},
				{Name: "isFeatured", Label: "Featured", Type: "checkbox", Checked: d.IsFeatured},
				{Name: "status", Label: "Published", Type: "checkbox", Checked: d.Status},
			}
		},
	}

	s := NewScreen(renderer, sessions, flashes, fetch, spec, func(ctx context.Context, key string) error {
		return svc.Delete(ctx, key)
	})
	s.Name = "posts"
	s.Title = "Articles"
	s.BasePath = "/admin/posts"
	s.Searchable = true
	s.ShowStatus = true
	s.Columns = []render.Column{{Label: "Title"}, {Label: "Category"}, {Label: "Status"}, {Label: "Created"}}
	s.KeyOf = func(p models.Post) string { return p.Slug }
	s.Row = func(p models.Post) render.Row {
		return render.Row{
			Key:   p.Slug,
			Cells: []string{p.Title, refText(p.Category), publishText(p.Status), p.CreatedAt},
			Actions: []render.RowAction{
				{Label: toggleLabel(p.Status), URL: s.BasePath + "/" + p.Slug + "/status", Method: "POST"},
				{Label: "Edit", URL: s.BasePath + "/" + p.Slug + "/edit", Method: "GET"},
				{Label: "Delete", URL: s.BasePath + "/" + p.Slug + "/delete", Method: "POST", Confirm: true},
			},
		}
	}
	s.SetSubmit(func(ctx context.Context, mode forms.Mode, key string, d PostDraft) error {
		input := api.PostInput{
			Title:        d.Title,
			Content:      d.Content,
			Description:  d.Description,
			Category:     d.Category,
			Thumbnail:    d.Thumbnail,
			ThumbnailAlt: d.ThumbnailAlt,
			Status:       d.Status,
			IsFeatured:   d.IsFeatured,
		}
		var err error
		if mode == forms.ModeCreate {
			_, err = svc.Create(ctx, input)
		} else {
			_, err = svc.Update(ctx, key, input)
		}
		return err
	})
	s.Extra = func(r chi.Router) {
		r.Post("/{key}/status", statusToggle(s, flashes, func(p models.Post) bool { return p.Status }, svc.SetStatus))
		r.Post("/preview", PreviewArticle)
	}
	return s
}

// PreviewArticle renders the posted Markdown body as an HTML fragment for
// the article editor's preview pane.
func PreviewArticle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	rendered, err := markdown.ToHTML(r.PostFormValue("content"))
	if err != nil {
		slog.Warn("article preview failed", "error", err)
		http.Error(w, "Could not render the preview.", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(rendered))
}

// PostCategoryDraft is the editable state of the category form.
type PostCategoryDraft struct {
	CategoryName string `validate:"required,min=2"`
	Status       bool
}

// NewPostCategoryScreen wires the category list and form to
// /admin/post-categories.
func NewPostCategoryScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.PostCategoryService) *Screen[models.PostCategory, PostCategoryDraft] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.PostCategory], error) {
		return svc.List(ctx, api.PostCategoryListOptions{
			Page:         q.Page,
			Limit:        q.PageSize,
			CategoryName: q.Filters.Keyword,
			Status:       q.Filters.Status,
		})
	}

	spec := &FormSpec[models.PostCategory, PostCategoryDraft]{
		NewTitle:  "New category",
		EditTitle: "Edit category",
		Defaults:  func() PostCategoryDraft { return PostCategoryDraft{Status: true} },
		FromRecord: func(c models.PostCategory) PostCategoryDraft {
			return PostCategoryDraft{CategoryName: c.CategoryName, Status: c.Status}
		},
		FromForm: func(values map[string][]string) PostCategoryDraft {
			return PostCategoryDraft{CategoryName: fv(values, "categoryName"), Status: fvBool(values, "status")}
		},
		Fields: func(ctx context.Context, mode forms.Mode, d PostCategoryDraft, errs map[string]string) []render.Field {
			return []render.Field{
				{Name: "categoryName", Label: "Name", Type: "text", Value: d.CategoryName, Required: true, Error: errs["CategoryName"]},
				{Name: "status", Label: "Visible", Type: "checkbox", Checked: d.Status},
			}
		},
	}

	s := NewScreen(renderer, sessions, flashes, fetch, spec, func(ctx context.Context, key string) error {
		return svc.Delete(ctx, key)
	})
	s.Name = "post-categories"
	s.Title = "Article categories"
	s.BasePath = "/admin/post-categories"
	s.Searchable = true
	s.ShowStatus = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Status"}, {Label: "Created"}}
	s.KeyOf = func(c models.PostCategory) string { return c.Slug }
	s.Row = func(c models.PostCategory) render.Row {
		return render.Row{
			Key:   c.Slug,
			Cells: []string{c.CategoryName, statusText(c.Status), c.CreatedAt},
			Actions: []render.RowAction{
				{Label: toggleLabel(c.Status), URL: s.BasePath + "/" + c.Slug + "/status", Method: "POST"},
				{Label: "Edit", URL: s.BasePath + "/" + c.Slug + "/edit", Method: "GET"},
				{Label: "Delete", URL: s.BasePath + "/" + c.Slug + "/delete", Method: "POST", Confirm: true},
			},
		}
	}
	s.SetSubmit(func(ctx context.Context, mode forms.Mode, key string, d PostCategoryDraft) error {
		input := api.PostCategoryInput{CategoryName: d.CategoryName, Status: d.Status}
		var err error
		if mode == forms.ModeCreate {
			_, err = svc.Create(ctx, input)
		} else {
			_, err = svc.Update(ctx, key, input)
		}
		return err
	})
	s.Extra = func(r chi.Router) {
		r.Post("/{key}/status", statusToggle(s, flashes, func(c models.PostCategory) bool { return c.Status }, svc.SetStatus))
	}
	return s
}

func publishText(status bool) string {
	if status {
		return "Published"
	}
	return "Draft"
}

func toggleLabel(status bool) string {
	if status {
		return "Unpublish"
	}
	return "Publish"
}

// statusToggle builds a POST handler that flips a record's publish flag. The
// current value comes from the listed record; the server owns the result, so
// the list is refetched rather than patched.
func statusToggle[T any, D any](
	s *Screen[T, D],
	flashes *flashQueue,
	statusOf func(T) bool,
	set func(ctx context.Context, key string, status bool) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		record, ok := s.findRecord(key)
		if !ok {
			flashes.push("error", "That record is no longer in the list.")
			http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
			return
		}
		if err := set(r.Context(), key, !statusOf(record)); err != nil {
			slog.Warn("status toggle failed", "screen", s.Name, "key", key, "error", err)
			flashes.push("error", api.UserMessage(err))
		} else {
			flashes.push("success", "Status updated.")
			s.Invalidate()
		}
		http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
	}
}

// categoryOptions loads the category choices for the article form.
func categoryOptions(ctx context.Context, categories *api.PostCategoryService, selected string) []render.Option {
	result, err := categories.List(ctx, api.PostCategoryListOptions{Limit: 100})
	if err != nil {
		slog.Warn("category options load failed", "error", err)
		return selectedOnlyOption(selected)
	}
	options := make([]render.Option, 0, len(result.Items)+1)
	options = append(options, render.Option{Value: "", Label: "No category"})
	for _, c := range result.Items {
		options = append(options, render.Option{Value: c.ID, Label: c.CategoryName, Selected: c.ID == selected})
	}
	return options
}
