// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"educonsole/internal/api"
	"educonsole/internal/forms"
	"educonsole/internal/listing"
	"educonsole/internal/models"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// GradeDraft is the editable state of the grade form.
type GradeDraft struct {
	GradeName string `validate:"required,min=2"`
	Status    bool
}

// NewGradeScreen wires the grade list and form to /admin/grades.
func NewGradeScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.GradeService) *Screen[models.Grade, GradeDraft] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.Grade], error) {
		return svc.List(ctx, api.GradeListOptions{
			Page:      q.Page,
			Limit:     q.PageSize,
			GradeName: q.Filters.Keyword,
			Status:    q.Filters.Status,
		})
	}

	spec := &FormSpec[models.Grade, GradeDraft]{
		NewTitle:  "New grade",
		EditTitle: "Edit grade",
		Defaults:  func() GradeDraft { return GradeDraft{Status: true} },
		FromRecord: func(g models.Grade) GradeDraft {
			return GradeDraft{GradeName: g.GradeName, Status: g.Status}
		},
		FromForm: func(values map[string][]string) GradeDraft {
			return GradeDraft{GradeName: fv(values, "gradeName"), Status: fvBool(values, "status")}
		},
		Fields: func(ctx context.Context, mode forms.Mode, d GradeDraft, errs map[string]string) []render.Field {
			return []render.Field{
				{Name: "gradeName", Label: "Name", Type: "text", Value: d.GradeName, Required: true, Error: errs["GradeName"]},
				{Name: "status", Label: "Active", Type: "checkbox", Checked: d.Status},
			}
		},
	}

	s := NewScreen(renderer, sessions, flashes, fetch, spec, func(ctx context.Context, key string) error {
		return svc.Delete(ctx, key)
	})
	s.Name = "grades"
	s.Title = "Grades"
	s.BasePath = "/admin/grades"
	s.Searchable = true
	s.ShowStatus = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Status"}, {Label: "Created"}}
	s.KeyOf = func(g models.Grade) string { return g.Slug }
	s.Row = func(g models.Grade) render.Row {
		return render.Row{
			Key:   g.Slug,
			Cells: []string{g.GradeName, statusText(g.Status), g.CreatedAt},
			Actions: []render.RowAction{
				{Label: "Edit", URL: s.BasePath + "/" + g.Slug + "/edit", Method: "GET"},
				{Label: "Delete", URL: s.BasePath + "/" + g.Slug + "/delete", Method: "POST", Confirm: true},
			},
		}
	}
	s.SetSubmit(func(ctx context.Context, mode forms.Mode, key string, d GradeDraft) error {
		input := api.GradeInput{GradeName: d.GradeName, Status: d.Status}
		var err error
		if mode == forms.ModeCreate {
			_, err = svc.Create(ctx, input)
		} else {
			_, err = svc.Update(ctx, key, input)
		}
		return err
	})
	return s
}

// SubjectDraft is the editable state of the subject form. Grade holds the
// flat grade id even when the listed record carried a populated document.
type SubjectDraft struct {
	SubjectName string `validate:"required,min=2"`
	Status      bool
	Grade       string `validate:"required"`
}

// NewSubjectScreen wires the subject list and form to /admin/subjects.
func NewSubjectScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.SubjectService, grades *api.GradeService) *Screen[models.Subject, SubjectDraft] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.Subject], error) {
		return svc.List(ctx, api.SubjectListOptions{
			Page:        q.Page,
			Limit:       q.PageSize,
			SubjectName: q.Filters.Keyword,
			Status:      q.Filters.Status,
		})
	}

	spec := &FormSpec[models.Subject, SubjectDraft]{
		NewTitle:  "New subject",
		EditTitle: "Edit subject",
		Defaults:  func() SubjectDraft { return SubjectDraft{Status: true} },
		FromRecord: func(sub models.Subject) SubjectDraft {
			return SubjectDraft{SubjectName: sub.SubjectName, Status: sub.Status, Grade: sub.Grade.ID}
		},
		FromForm: func(values map[string][]string) SubjectDraft {
			return SubjectDraft{
				SubjectName: fv(values, "subjectName"),
				Status:      fvBool(values, "status"),
				Grade:       fv(values, "grade"),
			}
		},
		Fields: func(ctx context.Context, mode forms.Mode, d SubjectDraft, errs map[string]string) []render.Field {
			return []render.Field{
				{Name: "subjectName", Label: "Name", Type: "text", Value: d.SubjectName, Required: true, Error: errs["SubjectName"]},
				{Name: "grade", Label: "Grade", Type: "select", Required: true, Error: errs["Grade"],
					Options: gradeOptions(ctx, grades, d.Grade)},
				{Name: "status", Label: "Active", Type: "checkbox", Checked: d.Status},
			}
		},
	}

	s := NewScreen(renderer, sessions, flashes, fetch, spec, func(ctx context.Context, key string) error {
		return svc.Delete(ctx, key)
	})
	s.Name = "subjects"
	s.Title = "Subjects"
	s.BasePath = "/admin/subjects"
	s.Searchable = true
	s.ShowStatus = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Grade"}, {Label: "Status"}}
	s.KeyOf = func(sub models.Subject) string { return sub.Slug }
	s.Row = func(sub models.Subject) render.Row {
		return render.Row{
			Key:   sub.Slug,
			Cells: []string{sub.SubjectName, refText(sub.Grade), statusText(sub.Status)},
			Actions: []render.RowAction{
				{Label: "Edit", URL: s.BasePath + "/" + sub.Slug + "/edit", Method: "GET"},
				{Label: "Delete", URL: s.BasePath + "/" + sub.Slug + "/delete", Method: "POST", Confirm: true},
			},
		}
	}
	s.SetSubmit(func(ctx context.Context, mode forms.Mode, key string, d SubjectDraft) error {
		input := api.SubjectInput{SubjectName: d.SubjectName, Status: d.Status, Grade: d.Grade}
		var err error
		if mode == forms.ModeCreate {
			_, err = svc.Create(ctx, input)
		} else {
			_, err = svc.Update(ctx, key, input)
		}
		return err
	})
	return s
}

// CourseDraft is the editable state of the course form.
type CourseDraft struct {
	CourseName    string `validate:"required,min=2"`
	Description   string
	Thumbnail     string
	Price         float64 `validate:"gte=0"`
	Status        bool
	Level         string `validate:"omitempty,oneof=beginner intermediate advanced"`
	TotalDuration int    `validate:"gte=0"`
	Subject       string `validate:"required"`
}

// NewCourseScreen wires the course list and form to /admin/courses.
func NewCourseScreen(renderer *render.Renderer, sessions *session.Store, flashes *flashQueue, svc *api.CourseService, subjects *api.SubjectService) *Screen[models.Course, CourseDraft] {
	fetch := func(ctx context.Context, q listing.Query) (api.ListResult[models.Course], error) {
		return svc.List(ctx, api.CourseListOptions{
			Page:       q.Page,
			Limit:      q.PageSize,
			CourseName: q.Filters.Keyword,
			Status:     q.Filters.Status,
		})
	}

	spec := &FormSpec[models.Course, CourseDraft]{
		NewTitle:  "New course",
		EditTitle: "Edit course",
		Defaults:  func() CourseDraft { return CourseDraft{Status: true, Level: string(models.LevelBeginner)} },
		FromRecord: func(c models.Course) CourseDraft {
			return CourseDraft{
				CourseName:    c.CourseName,
				Description:   c.Description,
				Thumbnail:     c.Thumbnail,
				Price:         c.Price,
				Status:        c.Status,
				Level:         string(c.Level),
				TotalDuration: c.TotalDuration,
				Subject:       c.Subject.ID,
			}
		},
		FromForm: func(values map[string][]string) CourseDraft {
			return CourseDraft{
				CourseName:    fv(values, "courseName"),
				Description:   fv(values, "description"),
				Thumbnail:     fv(values, "thumbnail"),
				Price:         fvFloat(values, "price"),
				Status:        fvBool(values, "status"),
				Level:         fv(values, "level"),
				TotalDuration: fvInt(values, "totalDuration"),
				Subject:       fv(values, "subject"),
			}
		},
		Fields: func(ctx context.Context, mode forms.Mode, d CourseDraft, errs map[string]string) []render.Field {
			return []render.Field{
				{Name: "courseName", Label: "Name", Type: "text", Value: d.CourseName, Required: true, Error: errs["CourseName"]},
				{Name: "description", Label: "Description", Type: "textarea", Value: d.Description},
				{Name: "subject", Label: "Subject", Type: "select", Required: true, Error: errs["Subject"],
					Options: subjectOptions(ctx, subjects, d.Subject)},
				{Name: "price", Label: "Price", Type: "number", Value: trimFloat(d.Price), Error: errs["Price"]},
				{Name: "level", Label: "Level", Type: "select", Options: levelOptions(d.Level), Error: errs["Level"]},
				{Name: "totalDuration", Label: "Total duration (minutes)", Type: "number", Value: strconv.Itoa(d.TotalDuration), Error: errs["TotalDuration"]},
				{Name: "thumbnail", Label: "Thumbnail URL", Type: "text", Value: d.Thumbnail, Hint: "Use the image upload to get a URL."},
				{Name: "status", Label: "Published", Type: "checkbox", Checked: d.Status},
			}
		},
	}

	s := NewScreen(renderer, sessions, flashes, fetch, spec, func(ctx context.Context, key string) error {
		return svc.Delete(ctx, key)
	})
	s.Name = "courses"
	s.Title = "Courses"
	s.BasePath = "/admin/courses"
	// The chapter routes nest under /admin/courses/{courseSlug}; chi needs
	// one parameter name across the shared subtree.
	s.KeyParam = "courseSlug"
	s.Searchable = true
	s.ShowStatus = true
	s.Columns = []render.Column{{Label: "Name"}, {Label: "Subject"}, {Label: "Price"}, {Label: "Students"}, {Label: "Status"}}
	s.KeyOf = func(c models.Course) string { return c.Slug }
	s.Row = func(c models.Course) render.Row {
		return render.Row{
			Key: c.Slug,
			Cells: []string{
				c.CourseName,
				refText(c.Subject),
				trimFloat(c.Price),
				strconv.Itoa(c.NumberOfStudents),
				statusText(c.Status),
			},
			Actions: []render.RowAction{
				{Label: "Chapters", URL: s.BasePath + "/" + c.Slug + "/chapters", Method: "GET"},
				{Label: "Edit", URL: s.BasePath + "/" + c.Slug + "/edit", Method: "GET"},
				{Label: "Delete", URL: s.BasePath + "/" + c.Slug + "/delete", Method: "POST", Confirm: true},
			},
		}
	}
	s.SetSubmit(func(ctx context.Context, mode forms.Mode, key string, d CourseDraft) error {
		input := api.CourseInput{
			CourseName:    d.CourseName,
			Description:   d.Description,
			Thumbnail:     d.Thumbnail,
			Price:         d.Price,
			Status:        d.Status,
			Level:         models.Level(d.Level),
			TotalDuration: d.TotalDuration,
			Subject:       d.Subject,
		}
		var err error
		if mode == forms.ModeCreate {
			_, err = svc.Create(ctx, input)
		} else {
			_, err = svc.Update(ctx, key, input)
		}
		return err
	})
	return s
}

// statusText renders the shared active/inactive cell.
func statusText(status bool) string {
	if status {
		return "Active"
	}
	return "Inactive"
}

// refText prefers the populated display name, falling back to the id.
func refText(r models.Ref) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// gradeOptions loads the grade choices for the subject form. A load failure
// degrades to the already-selected value so the form stays usable.
func gradeOptions(ctx context.Context, grades *api.GradeService, selected string) []render.Option {
	result, err := grades.List(ctx, api.GradeListOptions{Limit: 100})
	if err != nil {
		slog.Warn("grade options load failed", "error", err)
		return selectedOnlyOption(selected)
	}
	options := make([]render.Option, 0, len(result.Items)+1)
	options = append(options, render.Option{Value: "", Label: "Choose a grade"})
	for _, g := range result.Items {
		options = append(options, render.Option{Value: g.ID, Label: g.GradeName, Selected: g.ID == selected})
	}
	return options
}

// subjectOptions loads the subject choices for the course form.
func subjectOptions(ctx context.Context, subjects *api.SubjectService, selected string) []render.Option {
	result, err := subjects.List(ctx, api.SubjectListOptions{Limit: 100})
	if err != nil {
		slog.Warn("subject options load failed", "error", err)
		return selectedOnlyOption(selected)
	}
	options := make([]render.Option, 0, len(result.Items)+1)
	options = append(options, render.Option{Value: "", Label: "Choose a subject"})
	for _, sub := range result.Items {
		options = append(options, render.Option{Value: sub.ID, Label: sub.SubjectName, Selected: sub.ID == selected})
	}
	return options
}

func levelOptions(selected string) []render.Option {
	levels := []struct {
		value models.Level
		label string
	}{
		{models.LevelBeginner, "Beginner"},
		{models.LevelIntermediate, "Intermediate"},
		{models.LevelAdvanced, "Advanced"},
	}
	options := make([]render.Option, 0, len(levels))
	for _, level := range levels {
		options = append(options, render.Option{
			Value:    string(level.value),
			Label:    level.label,
			Selected: string(level.value) == selected,
		})
	}
	return options
}

func selectedOnlyOption(selected string) []render.Option {
	if selected == "" {
		return []render.Option{{Value: "", Label: "Choose"}}
	}
	return []render.Option{{Value: selected, Label: selected, Selected: true}}
}
