// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"educonsole/internal/api"
	"educonsole/internal/models"
	"educonsole/internal/render"
	"educonsole/internal/session"
)

// Console bundles every handler group behind one constructor so the router
// only deals in screens, not services.
type Console struct {
	Auth       *Auth
	Dashboard  *Dashboard
	Curriculum *Curriculum
	Uploads    *Uploads

	Grades             *Screen[models.Grade, GradeDraft]
	Subjects           *Screen[models.Subject, SubjectDraft]
	Courses            *Screen[models.Course, CourseDraft]
	Users              *Screen[models.User, UserDraft]
	Students           *Screen[models.User, struct{}]
	Instructors        *Screen[models.Instructor, InstructorRequestDraft]
	InstructorRequests *Screen[models.Instructor, struct{}]
	Posts              *Screen[models.Post, PostDraft]
	PostCategories     *Screen[models.PostCategory, PostCategoryDraft]

	NoAccess http.HandlerFunc
}

// New wires every screen to its platform service.
func New(renderer *render.Renderer, sessions *session.Store, client *api.Client) *Console {
	flashes := &flashQueue{}

	auth := api.NewAuthService(client)
	grades := api.NewGradeService(client)
	subjects := api.NewSubjectService(client)
	courses := api.NewCourseService(client)
	chapters := api.NewChapterService(client)
	lectures := api.NewLectureService(client)
	users := api.NewUserService(client)
	instructors := api.NewInstructorService(client)
	posts := api.NewPostService(client)
	categories := api.NewPostCategoryService(client)
	uploads := api.NewUploadService(client)

	return &Console{
		Auth:       NewAuth(renderer, sessions, auth, flashes),
		Dashboard:  NewDashboard(renderer, sessions, flashes, courses, users, instructors, posts),
		Curriculum: NewCurriculum(renderer, sessions, flashes, courses, chapters, lectures),
		Uploads:    NewUploads(uploads),

		Grades:             NewGradeScreen(renderer, sessions, flashes, grades),
		Subjects:           NewSubjectScreen(renderer, sessions, flashes, subjects, grades),
		Courses:            NewCourseScreen(renderer, sessions, flashes, courses, subjects),
		Users:              NewUserScreen(renderer, sessions, flashes, users),
		Students:           NewStudentScreen(renderer, sessions, flashes, users),
		Instructors:        NewInstructorScreen(renderer, sessions, flashes, instructors),
		InstructorRequests: NewInstructorRequestScreen(renderer, sessions, flashes, instructors),
		Posts:              NewPostScreen(renderer, sessions, flashes, posts, categories),
		PostCategories:     NewPostCategoryScreen(renderer, sessions, flashes, categories),

		NoAccess: NoAccess(renderer, sessions, flashes),
	}
}

// SessionExpired queues the notice shown after a platform 401 cleared the
// session. Wire it to the API client's auth-failure hook.
func (c *Console) SessionExpired() {
	c.Auth.flashes.push("warning", "Your session expired. Sign in again.")
}

// Close tears down the screens' background components (debounce timers,
// in-flight fetches).
func (c *Console) Close() {
	c.Grades.Close()
	c.Subjects.Close()
	c.Courses.Close()
	c.Users.Close()
	c.Students.Close()
	c.Instructors.Close()
	c.InstructorRequests.Close()
	c.Posts.Close()
	c.PostCategories.Close()
}
