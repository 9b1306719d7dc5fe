// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"educonsole/internal/api"
	"educonsole/internal/forms"
	"educonsole/internal/models"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// Curriculum serves the chapter and lecture screens nested under a course.
// Unlike the top-level entities these lists are scoped by the URL (course
// slug, chapter id) and come back unpaginated, so each request fetches its
// own scope instead of going through a long-lived list controller.
type Curriculum struct {
	renderer *render.Renderer
	sessions *session.Store
	flashes  *flashQueue
	courses  *api.CourseService
	chapters *api.ChapterService
	lectures *api.LectureService
}

// NewCurriculum creates the nested chapter/lecture handler group.
func NewCurriculum(
	renderer *render.Renderer,
	sessions *session.Store,
	flashes *flashQueue,
	courses *api.CourseService,
	chapters *api.ChapterService,
	lectures *api.LectureService,
) *Curriculum {
	return &Curriculum{
		renderer: renderer,
		sessions: sessions,
		flashes:  flashes,
		courses:  courses,
		chapters: chapters,
		lectures: lectures,
	}
}

// Mount registers the nested routes on r, scoped to
// /admin/courses/{courseSlug}/chapters.
func (c *Curriculum) Mount(r chi.Router) {
	r.Get("/", c.ListChapters)
	r.Get("/new", c.NewChapter)
	r.Post("/new", c.CreateChapter)
	r.Get("/{chapterID}/edit", c.EditChapter)
	r.Post("/{chapterID}/edit", c.UpdateChapter)
	r.Post("/{chapterID}/delete", c.DeleteChapter)

	r.Get("/{chapterID}/lectures", c.ListLectures)
	r.Get("/{chapterID}/lectures/new", c.NewLecture)
	r.Post("/{chapterID}/lectures/new", c.CreateLecture)
	r.Get("/{chapterID}/lectures/{lectureID}/edit", c.EditLecture)
	r.Post("/{chapterID}/lectures/{lectureID}/edit", c.UpdateLecture)
	r.Post("/{chapterID}/lectures/{lectureID}/delete", c.DeleteLecture)
}

func chaptersPath(courseSlug string) string {
	return "/admin/courses/" + courseSlug + "/chapters"
}

// durationText renders a lecture length in minutes and seconds.
func durationText(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ChapterDraft is the editable state of the chapter form.
type ChapterDraft struct {
	ChapterName string `validate:"required,min=2"`
	Description string
	Order       int `validate:"gte=0"`
	Status      bool
}

// LectureDraft is the editable state of the lecture form.
type LectureDraft struct {
	LectureName string `validate:"required,min=2"`
	Description string
	VideoURL    string
	Duration    int `validate:"gte=0"`
	Order       int `validate:"gte=0"`
	Status      bool
}

// ListChapters renders the chapters of one course in curriculum order.
func (c *Curriculum) ListChapters(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	base := chaptersPath(courseSlug)

	title := "Chapters"
	if course, err := c.courses.Get(r.Context(), courseSlug); err == nil && course != nil {
		title = "Chapters: " + course.CourseName
	}

	result, err := c.chapters.ListByCourse(r.Context(), courseSlug)
	errMsg := ""
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		slog.Warn("chapter list failed", "course", courseSlug, "error", err)
		errMsg = api.UserMessage(err)
	}

	rows := make([]render.Row, 0, len(result.Items))
	for _, ch := range result.Items {
		rows = append(rows, render.Row{
			Key: ch.ID,
			Cells: []string{
				strconv.Itoa(ch.Order),
				ch.ChapterName,
				strconv.Itoa(len(ch.Lectures)),
				statusText(ch.Status),
			},
			Actions: []render.RowAction{
				{Label: "Lectures", URL: base + "/" + ch.ID + "/lectures", Method: "GET"},
				{Label: "Edit", URL: base + "/" + ch.ID + "/edit", Method: "GET"},
				{Label: "Delete", URL: base + "/" + ch.ID + "/delete", Method: "POST", Confirm: true},
			},
		})
	}

	data := map[string]any{
		"BasePath": base,
		"Err":      errMsg,
		"NewURL":   base + "/new",
		"Table": render.Table{
			Columns: []render.Column{{Label: "Order"}, {Label: "Chapter"}, {Label: "Lectures"}, {Label: "Status"}},
			Rows:    rows,
			Empty:   "This course has no chapters yet.",
		},
	}
	c.renderer.Page(w, r, "list", basePage(title, "courses", c.sessions, c.flashes, data))
}

func (c *Curriculum) chapterFields(d ChapterDraft, errs map[string]string) []render.Field {
	return []render.Field{
		{Name: "chapterName", Label: "Name", Type: "text", Value: d.ChapterName, Required: true, Error: errs["ChapterName"]},
		{Name: "description", Label: "Description", Type: "textarea", Value: d.Description},
		{Name: "order", Label: "Order", Type: "number", Value: strconv.Itoa(d.Order), Error: errs["Order"]},
		{Name: "status", Label: "Visible", Type: "checkbox", Checked: d.Status},
	}
}

func chapterDraftFromForm(values map[string][]string) ChapterDraft {
	return ChapterDraft{
		ChapterName: fv(values, "chapterName"),
		Description: fv(values, "description"),
		Order:       fvInt(values, "order"),
		Status:      fvBool(values, "status"),
	}
}

// NewChapter renders an empty chapter form.
func (c *Curriculum) NewChapter(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	base := chaptersPath(courseSlug)
	c.renderEntityForm(w, r, "New chapter", base+"/new", base,
		c.chapterFields(ChapterDraft{Status: true}, nil), "")
}

// CreateChapter submits the posted chapter form.
func (c *Curriculum) CreateChapter(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	base := chaptersPath(courseSlug)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	draft := chapterDraftFromForm(r.PostForm)

	snap, err := submitScoped(r, forms.ModeCreate, "", draft, func(d ChapterDraft) (api.ChapterInput, error) {
		return api.ChapterInput{
			ChapterName: d.ChapterName,
			Description: d.Description,
			Order:       d.Order,
			Status:      d.Status,
			CourseSlug:  courseSlug,
		}, nil
	}, func(ctx context.Context, input api.ChapterInput, key string) error {
		_, err := c.chapters.Create(ctx, input)
		return err
	})
	if err != nil {
		c.renderEntityForm(w, r, "New chapter", base+"/new", base,
			c.chapterFields(draft, snap.FieldErrs), snap.Err)
		return
	}
	c.flashes.push("success", "Chapter created.")
	http.Redirect(w, r, base, http.StatusSeeOther)
}

// EditChapter renders the chapter form prefilled from the listed record.
func (c *Curriculum) EditChapter(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	base := chaptersPath(courseSlug)

	chapter, ok := c.findChapter(r, courseSlug, chapterID)
	if !ok {
		c.flashes.push("error", "That chapter is no longer in the list.")
		http.Redirect(w, r, base, http.StatusSeeOther)
		return
	}
	draft := ChapterDraft{
		ChapterName: chapter.ChapterName,
		Description: chapter.Description,
		Order:       chapter.Order,
		Status:      chapter.Status,
	}
	c.renderEntityForm(w, r, "Edit chapter", base+"/"+chapterID+"/edit", base,
		c.chapterFields(draft, nil), "")
}

// UpdateChapter submits the posted chapter edit.
func (c *Curriculum) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	base := chaptersPath(courseSlug)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	draft := chapterDraftFromForm(r.PostForm)

	snap, err := submitScoped(r, forms.ModeEdit, chapterID, draft, func(d ChapterDraft) (api.ChapterInput, error) {
		return api.ChapterInput{
			ChapterName: d.ChapterName,
			Description: d.Description,
			Order:       d.Order,
			Status:      d.Status,
		}, nil
	}, func(ctx context.Context, input api.ChapterInput, key string) error {
		_, err := c.chapters.Update(ctx, key, input)
		return err
	})
	if err != nil {
		c.renderEntityForm(w, r, "Edit chapter", base+"/"+chapterID+"/edit", base,
			c.chapterFields(draft, snap.FieldErrs), snap.Err)
		return
	}
	c.flashes.push("success", "Chapter saved.")
	http.Redirect(w, r, base, http.StatusSeeOther)
}

// DeleteChapter removes a chapter and its lectures.
func (c *Curriculum) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	if err := c.chapters.Delete(r.Context(), chapterID); err != nil {
		slog.Warn("chapter delete failed", "chapter", chapterID, "error", err)
		c.flashes.push("error", api.UserMessage(err))
	} else {
		c.flashes.push("success", "Chapter deleted.")
	}
	http.Redirect(w, r, chaptersPath(courseSlug), http.StatusSeeOther)
}

// ListLectures renders the lectures of one chapter in playback order.
func (c *Curriculum) ListLectures(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	base := chaptersPath(courseSlug) + "/" + chapterID + "/lectures"

	title := "Lectures"
	if chapter, ok := c.findChapter(r, courseSlug, chapterID); ok {
		title = "Lectures: " + chapter.ChapterName
	}

	result, err := c.lectures.ListByChapter(r.Context(), chapterID)
	errMsg := ""
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		slog.Warn("lecture list failed", "chapter", chapterID, "error", err)
		errMsg = api.UserMessage(err)
	}

	rows := make([]render.Row, 0, len(result.Items))
	for _, lec := range result.Items {
		rows = append(rows, render.Row{
			Key: lec.ID,
			Cells: []string{
				strconv.Itoa(lec.Order),
				lec.LectureName,
				durationText(lec.Duration),
				statusText(lec.Status),
			},
			Actions: []render.RowAction{
				{Label: "Edit", URL: base + "/" + lec.ID + "/edit", Method: "GET"},
				{Label: "Delete", URL: base + "/" + lec.ID + "/delete", Method: "POST", Confirm: true},
			},
		})
	}

	data := map[string]any{
		"BasePath": base,
		"Err":      errMsg,
		"NewURL":   base + "/new",
		"Table": render.Table{
			Columns: []render.Column{{Label: "Order"}, {Label: "Lecture"}, {Label: "Duration"}, {Label: "Status"}},
			Rows:    rows,
			Empty:   "This chapter has no lectures yet.",
		},
	}
	c.renderer.Page(w, r, "list", basePage(title, "courses", c.sessions, c.flashes, data))
}

func (c *Curriculum) lectureFields(d LectureDraft, errs map[string]string) []render.Field {
	return []render.Field{
		{Name: "lectureName", Label: "Name", Type: "text", Value: d.LectureName, Required: true, Error: errs["LectureName"]},
		{Name: "description", Label: "Description", Type: "textarea", Value: d.Description},
		{Name: "videoUrl", Label: "Video URL", Type: "text", Value: d.VideoURL, Hint: "Use the video upload to get a URL."},
		{Name: "duration", Label: "Duration (seconds)", Type: "number", Value: strconv.Itoa(d.Duration), Error: errs["Duration"]},
		{Name: "order", Label: "Order", Type: "number", Value: strconv.Itoa(d.Order), Error: errs["Order"]},
		{Name: "status", Label: "Visible", Type: "checkbox", Checked: d.Status},
	}
}

func lectureDraftFromForm(values map[string][]string) LectureDraft {
	return LectureDraft{
		LectureName: fv(values, "lectureName"),
		Description: fv(values, "description"),
		VideoURL:    fv(values, "videoUrl"),
		Duration:    fvInt(values, "duration"),
		Order:       fvInt(values, "order"),
		Status:      fvBool(values, "status"),
	}
}

// NewLecture renders an empty lecture form.
func (c *Curriculum) NewLecture(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	base := chaptersPath(courseSlug) + "/" + chapterID + "/lectures"
	c.renderEntityForm(w, r, "New lecture", base+"/new", base,
		c.lectureFields(LectureDraft{Status: true}, nil), "")
}

// CreateLecture submits the posted lecture form. The create payload names
// the chapter by slug, which is resolved from the course's chapter list.
func (c *Curriculum) CreateLecture(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	base := chaptersPath(courseSlug) + "/" + chapterID + "/lectures"
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	draft := lectureDraftFromForm(r.PostForm)

	chapter, ok := c.findChapter(r, courseSlug, chapterID)
	if !ok {
		c.flashes.push("error", "That chapter is no longer in the list.")
		http.Redirect(w, r, chaptersPath(courseSlug), http.StatusSeeOther)
		return
	}

	snap, err := submitScoped(r, forms.ModeCreate, "", draft, func(d LectureDraft) (api.LectureInput, error) {
		return api.LectureInput{
			LectureName: d.LectureName,
			Description: d.Description,
			VideoURL:    d.VideoURL,
			Duration:    d.Duration,
			Order:       d.Order,
			Status:      d.Status,
			ChapterSlug: chapter.Slug,
		}, nil
	}, func(ctx context.Context, input api.LectureInput, key string) error {
		_, err := c.lectures.Create(ctx, input)
		return err
	})
	if err != nil {
		c.renderEntityForm(w, r, "New lecture", base+"/new", base,
			c.lectureFields(draft, snap.FieldErrs), snap.Err)
		return
	}
	c.flashes.push("success", "Lecture created.")
	http.Redirect(w, r, base, http.StatusSeeOther)
}

// EditLecture renders the lecture form prefilled from the listed record.
func (c *Curriculum) EditLecture(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	lectureID := chi.URLParam(r, "lectureID")
	base := chaptersPath(courseSlug) + "/" + chapterID + "/lectures"

	lecture, ok := c.findLecture(r, chapterID, lectureID)
	if !ok {
		c.flashes.push("error", "That lecture is no longer in the list.")
		http.Redirect(w, r, base, http.StatusSeeOther)
		return
	}
	draft := LectureDraft{
		LectureName: lecture.LectureName,
		Description: lecture.Description,
		VideoURL:    lecture.VideoURL,
		Duration:    lecture.Duration,
		Order:       lecture.Order,
		Status:      lecture.Status,
	}
	c.renderEntityForm(w, r, "Edit lecture", base+"/"+lectureID+"/edit", base,
		c.lectureFields(draft, nil), "")
}

// UpdateLecture submits the posted lecture edit.
func (c *Curriculum) UpdateLecture(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	lectureID := chi.URLParam(r, "lectureID")
	base := chaptersPath(courseSlug) + "/" + chapterID + "/lectures"
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	draft := lectureDraftFromForm(r.PostForm)

	snap, err := submitScoped(r, forms.ModeEdit, lectureID, draft, func(d LectureDraft) (api.LectureInput, error) {
		return api.LectureInput{
			LectureName: d.LectureName,
			Description: d.Description,
			VideoURL:    d.VideoURL,
			Duration:    d.Duration,
			Order:       d.Order,
			Status:      d.Status,
		}, nil
	}, func(ctx context.Context, input api.LectureInput, key string) error {
		_, err := c.lectures.Update(ctx, key, input)
		return err
	})
	if err != nil {
		c.renderEntityForm(w, r, "Edit lecture", base+"/"+lectureID+"/edit", base,
			c.lectureFields(draft, snap.FieldErrs), snap.Err)
		return
	}
	c.flashes.push("success", "Lecture saved.")
	http.Redirect(w, r, base, http.StatusSeeOther)
}

// DeleteLecture removes a lecture.
func (c *Curriculum) DeleteLecture(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	chapterID := chi.URLParam(r, "chapterID")
	lectureID := chi.URLParam(r, "lectureID")
	base := chaptersPath(courseSlug) + "/" + chapterID + "/lectures"
	if err := c.lectures.Delete(r.Context(), lectureID); err != nil {
		slog.Warn("lecture delete failed", "lecture", lectureID, "error", err)
		c.flashes.push("error", api.UserMessage(err))
	} else {
		c.flashes.push("success", "Lecture deleted.")
	}
	http.Redirect(w, r, base, http.StatusSeeOther)
}

// findChapter locates a chapter in its course's list.
func (c *Curriculum) findChapter(r *http.Request, courseSlug, chapterID string) (models.Chapter, bool) {
	result, err := c.chapters.ListByCourse(r.Context(), courseSlug)
	if err != nil {
		return models.Chapter{}, false
	}
	for _, ch := range result.Items {
		if ch.ID == chapterID {
			return ch, true
		}
	}
	return models.Chapter{}, false
}

// findLecture locates a lecture in its chapter's list.
func (c *Curriculum) findLecture(r *http.Request, chapterID, lectureID string) (models.Lecture, bool) {
	result, err := c.lectures.ListByChapter(r.Context(), chapterID)
	if err != nil {
		return models.Lecture{}, false
	}
	for _, lec := range result.Items {
		if lec.ID == lectureID {
			return lec, true
		}
	}
	return models.Lecture{}, false
}

// renderEntityForm draws the shared form template for the nested screens.
func (c *Curriculum) renderEntityForm(w http.ResponseWriter, r *http.Request, title, action, cancel string, fields []render.Field, errMsg string) {
	data := map[string]any{
		"Form": render.FormView{
			Title:  title,
			Action: action,
			Cancel: cancel,
			Err:    errMsg,
			Fields: fields,
		},
	}
	c.renderer.Page(w, r, "form", basePage(title, "courses", c.sessions, c.flashes, data))
}

// submitScoped runs one nested-screen submit through a request-scoped form,
// reusing its validation and error mapping. A non-nil error comes with the
// snapshot carrying field messages or the server's message.
func submitScoped[D any, I any](
	r *http.Request,
	mode forms.Mode,
	key string,
	draft D,
	build func(D) (I, error),
	call func(ctx context.Context, input I, key string) error,
) (forms.Snapshot[D], error) {
	form := forms.New[D](func(ctx context.Context, m forms.Mode, k string, d D) error {
		input, err := build(d)
		if err != nil {
			return err
		}
		return call(ctx, input, k)
	}, nil)
	if mode == forms.ModeCreate {
		form.OpenCreate(draft)
	} else {
		form.OpenEdit(key, draft)
	}
	err := form.Submit(r.Context())
	if err != nil && !errors.Is(err, forms.ErrSubmitting) {
		return form.Snapshot(), err
	}
	return forms.Snapshot[D]{}, nil
}
