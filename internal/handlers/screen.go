// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"educonsole/internal/api"
	"educonsole/internal/forms"
	"educonsole/internal/listing"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// pageSizes are the page size choices offered on every list screen.
var pageSizes = []int{10, 20, 50}

// FormSpec describes one entity's create/edit form: how to seed a draft,
// prefill it from a listed record, rebuild it from posted form values, and
// render it as fields.
type FormSpec[T any, D any] struct {
	NewTitle  string
	EditTitle string

	// Defaults seeds a create draft.
	Defaults func() D
	// FromRecord prefills an edit draft from a listed record, flattening
	// populated references down to their ids.
	FromRecord func(T) D
	// FromForm rebuilds a draft from posted form values.
	FromForm func(map[string][]string) D
	// Fields renders the draft as form inputs. ctx is available for loading
	// select options from the API.
	Fields func(ctx context.Context, mode forms.Mode, draft D, errs map[string]string) []render.Field
}

// Screen wires one platform entity to the shared list and form templates:
// a list controller with filter bar, a form state machine, and the HTTP
// handlers around them.
type Screen[T any, D any] struct {
	Name     string // sidebar section and flash noun, e.g. "grades"
	Title    string
	BasePath string

	Columns    []render.Column
	Row        func(T) render.Row
	KeyOf      func(T) string
	ShowStatus bool
	Searchable bool

	// KeyParam overrides the URL parameter naming the record; it defaults to
	// "key". Screens that share a route subtree with nested resources set it
	// so chi sees one consistent parameter (courses use "courseSlug").
	KeyParam string

	ctrl   *listing.Controller[T]
	bar    *listing.FilterBar
	form   *forms.Form[D]
	spec   *FormSpec[T, D]
	submit forms.SubmitFunc[D]

	// remove deletes the record addressed by key; nil disables deletion.
	remove func(ctx context.Context, key string) error

	// Extra registers entity-specific routes (status toggles, review
	// actions) after the shared ones.
	Extra func(chi.Router)

	renderer *render.Renderer
	sessions *session.Store
	flashes  *flashQueue
}

// NewScreen assembles a resource screen. spec may be nil for read-only
// screens (students); remove may be nil when the entity cannot be deleted
// from the console.
func NewScreen[T any, D any](
	renderer *render.Renderer,
	sessions *session.Store,
	flashes *flashQueue,
	fetch listing.FetchFunc[T],
	spec *FormSpec[T, D],
	remove func(ctx context.Context, key string) error,
) *Screen[T, D] {
	s := &Screen[T, D]{
		renderer: renderer,
		sessions: sessions,
		flashes:  flashes,
		spec:     spec,
		remove:   remove,
	}
	s.ctrl = listing.NewController(fetch)
	s.bar = listing.NewFilterBar(s.ctrl.SetFilters)
	if spec != nil {
		s.form = forms.New(s.submitDraft, s.ctrl.Invalidate)
	}
	return s
}

var errNoSubmit = errors.New("handlers: screen has no submit operation")

// submitDraft routes the form's submit through the bound service operation.
func (s *Screen[T, D]) submitDraft(ctx context.Context, mode forms.Mode, key string, draft D) error {
	if s.submit == nil {
		return errNoSubmit
	}
	return s.submit(ctx, mode, key, draft)
}

// SetSubmit binds the service operation behind the form.
func (s *Screen[T, D]) SetSubmit(fn forms.SubmitFunc[D]) { s.submit = fn }

// Close tears down the screen's background components.
func (s *Screen[T, D]) Close() {
	s.bar.Close()
	s.ctrl.Close()
}

// keyParam returns the URL parameter naming the record.
func (s *Screen[T, D]) keyParam() string {
	if s.KeyParam != "" {
		return s.KeyParam
	}
	return "key"
}

// Mount registers the screen's routes on r, which is already scoped to
// BasePath.
func (s *Screen[T, D]) Mount(r chi.Router) {
	param := "{" + s.keyParam() + "}"
	r.Get("/", s.List)
	if s.Searchable {
		r.Post("/keyword", s.Keyword)
	}
	if s.spec != nil {
		r.Get("/new", s.NewForm)
		r.Post("/new", s.Create)
		// Some screens are create-only (instructor applications).
		if s.spec.FromRecord != nil {
			r.Get("/"+param+"/edit", s.EditForm)
			r.Post("/"+param+"/edit", s.Update)
		}
	}
	if s.remove != nil {
		r.Post("/"+param+"/delete", s.Delete)
	}
	if s.Extra != nil {
		s.Extra(r)
	}
}

// Invalidate refetches the list; entity-specific actions call it after a
// mutation that bypasses the form.
func (s *Screen[T, D]) Invalidate() { s.ctrl.Invalidate() }

// List renders the paginated table. The URL query is the source of truth
// for the list inputs; the handler applies it, waits for the fetch to
// settle, and redirects to the canonical query string when they differ
// (changing the page size resets the page, for example).
func (s *Screen[T, D]) List(w http.ResponseWriter, r *http.Request) {
	q := listing.ParseQuery(r.URL.Query())
	s.ctrl.Apply(q)
	if err := s.ctrl.Wait(r.Context()); err != nil {
		return // client went away
	}

	snap := s.ctrl.Snapshot()
	if snap.Unauthorized {
		// The 401 already cleared the session; leave for the login page in
		// this response rather than rendering a stale table.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	canonical := s.ctrl.Query().Encode().Encode()
	if r.URL.Query().Encode() != canonical {
		target := s.BasePath
		if canonical != "" {
			target += "?" + canonical
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	rows := make([]render.Row, 0, len(snap.Records))
	for _, record := range snap.Records {
		rows = append(rows, s.Row(record))
	}

	status := ""
	if snap.Query.Filters.Status != nil {
		status = strconv.FormatBool(*snap.Query.Filters.Status)
	}

	data := map[string]any{
		"BasePath":  s.BasePath,
		"PageSizes": pageSizes,
		"Err":       snap.Err,
		"Table": render.Table{
			Columns: s.Columns,
			Rows:    rows,
			Empty:   "Nothing here yet.",
		},
		"Pager": render.Pager{
			CurrentPage: snap.Pagination.CurrentPage,
			TotalPages:  snap.Pagination.TotalPages,
			TotalItems:  snap.Pagination.TotalItems,
			PageSize:    snap.Query.PageSize,
			BasePath:    s.BasePath,
			QueryString: filterQueryString(snap.Query),
		},
	}
	if s.Searchable {
		data["Filter"] = render.FilterView{
			Keyword:    snap.Query.Filters.Keyword,
			Status:     status,
			ShowStatus: s.ShowStatus,
		}
	}
	if s.spec != nil {
		data["NewURL"] = s.BasePath + "/new"
	}

	s.renderer.Page(w, r, "list", basePage(s.Title, s.Name, s.sessions, s.flashes, data))
}

// filterQueryString encodes everything except the page number, for reuse in
// pager links.
func filterQueryString(q listing.Query) string {
	values := q.Encode()
	values.Del("page")
	return values.Encode()
}

// Keyword receives live keystrokes from the search box. The filter bar
// debounces them and feeds the controller; the page polls the list with a
// plain GET afterwards.
func (s *Screen[T, D]) Keyword(w http.ResponseWriter, r *http.Request) {
	s.bar.SetKeyword(r.FormValue("q"))
	w.WriteHeader(http.StatusNoContent)
}

// NewForm renders an empty create form.
func (s *Screen[T, D]) NewForm(w http.ResponseWriter, r *http.Request) {
	s.form.OpenCreate(s.spec.Defaults())
	s.renderForm(w, r, s.spec.NewTitle, s.BasePath+"/new")
}

// Create submits the posted create form.
func (s *Screen[T, D]) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if s.form.Snapshot().State != forms.StateOpen {
		s.form.OpenCreate(s.spec.Defaults())
	}
	s.form.SetDraft(s.spec.FromForm(r.PostForm))
	s.finishSubmit(w, r, s.spec.NewTitle, s.BasePath+"/new", "Created.")
}

// EditForm renders the form prefilled from the listed record.
func (s *Screen[T, D]) EditForm(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, s.keyParam())
	record, ok := s.findRecord(key)
	if !ok {
		s.flashes.push("error", "That record is no longer in the list.")
		http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
		return
	}
	s.form.OpenEdit(key, s.spec.FromRecord(record))
	s.renderForm(w, r, s.spec.EditTitle, s.BasePath+"/"+key+"/edit")
}

// Update submits the posted edit form.
func (s *Screen[T, D]) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	key := chi.URLParam(r, s.keyParam())

	snap := s.form.Snapshot()
	if snap.State != forms.StateOpen || snap.Mode != forms.ModeEdit || snap.Key != key {
		record, ok := s.findRecord(key)
		if !ok {
			s.flashes.push("error", "That record is no longer in the list.")
			http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
			return
		}
		s.form.OpenEdit(key, s.spec.FromRecord(record))
	}
	s.form.SetDraft(s.spec.FromForm(r.PostForm))
	s.finishSubmit(w, r, s.spec.EditTitle, s.BasePath+"/"+key+"/edit", "Saved.")
}

// finishSubmit runs the form submit and renders the outcome: redirect on
// success, the form with messages otherwise.
func (s *Screen[T, D]) finishSubmit(w http.ResponseWriter, r *http.Request, title, action, successMsg string) {
	err := s.form.Submit(r.Context())
	switch {
	case err == nil:
		s.flashes.push("success", successMsg)
		http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
	case errors.Is(err, api.ErrUnauthorized):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, forms.ErrSubmitting):
		// Double click; the first submit is still running.
		http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
	default:
		s.renderForm(w, r, title, action)
	}
}

// Delete removes the record and refetches the current page.
func (s *Screen[T, D]) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, s.keyParam())
	if err := s.remove(r.Context(), key); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		slog.Warn("delete failed", "screen", s.Name, "key", key, "error", err)
		s.flashes.push("error", api.UserMessage(err))
	} else {
		s.flashes.push("success", "Deleted.")
		s.ctrl.Invalidate()
	}
	http.Redirect(w, r, s.BasePath, http.StatusSeeOther)
}

// renderForm draws the form template from the current form snapshot.
func (s *Screen[T, D]) renderForm(w http.ResponseWriter, r *http.Request, title, action string) {
	snap := s.form.Snapshot()
	fields := s.spec.Fields(r.Context(), snap.Mode, snap.Draft, snap.FieldErrs)
	data := map[string]any{
		"Form": render.FormView{
			Title:  title,
			Action: action,
			Cancel: s.BasePath,
			Err:    snap.Err,
			Fields: fields,
		},
	}
	s.renderer.Page(w, r, "form", basePage(title, s.Name, s.sessions, s.flashes, data))
}

// findRecord locates a listed record by key, refetching once if the page
// in memory does not contain it.
func (s *Screen[T, D]) findRecord(key string) (T, bool) {
	if record, ok := s.scan(key); ok {
		return record, true
	}
	s.ctrl.Invalidate()
	if err := s.ctrl.Wait(context.Background()); err == nil {
		return s.scan(key)
	}
	var zero T
	return zero, false
}

func (s *Screen[T, D]) scan(key string) (T, bool) {
	for _, record := range s.ctrl.Snapshot().Records {
		if s.KeyOf(record) == key {
			return record, true
		}
	}
	var zero T
	return zero, false
}
