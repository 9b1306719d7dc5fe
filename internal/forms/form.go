// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forms models the lifecycle of an entity create/edit form: a small
// state machine that validates a draft payload, hands it to a bound service
// operation, and reports the outcome back to the screen.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"educonsole/internal/api"
)

// State is the form's lifecycle position.
type State int

const (
	// StateClosed means no form is on screen.
	StateClosed State = iota
	// StateOpen means the operator is editing a draft.
	StateOpen
	// StateSubmitting means a submit is in flight; input is locked.
	StateSubmitting
)

// Mode distinguishes creating a new record from editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ErrSubmitting is returned when Submit is called while a previous submit
// has not resolved yet.
var ErrSubmitting = errors.New("forms: submit already in flight")

// ErrClosed is returned when Submit is called with no open form.
var ErrClosed = errors.New("forms: form is not open")

// ErrInvalid is returned when the draft fails local validation. Field
// messages are available on the snapshot; no network call was made.
var ErrInvalid = errors.New("forms: draft failed validation")

// SubmitFunc performs the bound service operation for a resolved draft. For
// ModeEdit, key addresses the record (slug or id); it is empty for ModeCreate.
type SubmitFunc[D any] func(ctx context.Context, mode Mode, key string, draft D) error

// Snapshot is a copy of the form state for rendering.
type Snapshot[D any] struct {
	State     State
	Mode      Mode
	Key       string
	Draft     D
	Err       string
	FieldErrs map[string]string
}

// Form drives one entity's create/edit dialog.
type Form[D any] struct {
	submit    SubmitFunc[D]
	onSuccess func()
	validate  *validator.Validate

	mu         sync.Mutex
	state      State
	mode       Mode
	key        string
	draft      D
	errMsg     string
	fieldErrs  map[string]string
	generation uint64
}

// New creates a form bound to a service operation. onSuccess runs after a
// successful submit, typically the paired controller's Invalidate.
func New[D any](submit SubmitFunc[D], onSuccess func()) *Form[D] {
	return &Form[D]{
		submit:    submit,
		onSuccess: onSuccess,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// OpenCreate opens an empty create form seeded with draft defaults.
func (f *Form[D]) OpenCreate(draft D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openLocked(ModeCreate, "", draft)
}

// OpenEdit opens an edit form for the record addressed by key, prefilled
// with draft. Callers build the draft from the listed record, flattening any
// populated reference down to its id so the payload matches what the API
// expects on write.
func (f *Form[D]) OpenEdit(key string, draft D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openLocked(ModeEdit, key, draft)
}

func (f *Form[D]) openLocked(mode Mode, key string, draft D) {
	// Opening supersedes whatever was happening, including an unresolved
	// submit; its result will be discarded.
	f.generation++
	f.state = StateOpen
	f.mode = mode
	f.key = key
	f.draft = draft
	f.errMsg = ""
	f.fieldErrs = nil
}

// SetDraft replaces the draft while the form is open. Ignored once a submit
// is in flight.
func (f *Form[D]) SetDraft(draft D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateOpen {
		return
	}
	f.draft = draft
}

// Cancel closes the form. Works in any state; a submit still in flight will
// resolve into the void.
func (f *Form[D]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.resetLocked()
}

func (f *Form[D]) resetLocked() {
	var zero D
	f.state = StateClosed
	f.key = ""
	f.draft = zero
	f.errMsg = ""
	f.fieldErrs = nil
}

// Submit validates the draft and runs the bound operation. Validation
// failures stay local; a server-side failure returns the form to the open
// state with the server's message so nothing typed is lost. Success closes
// the form and notifies onSuccess.
func (f *Form[D]) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case StateClosed:
		f.mu.Unlock()
		return ErrClosed
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmitting
	}

	if errs := f.check(f.draft); len(errs) > 0 {
		f.fieldErrs = errs
		f.errMsg = ""
		f.mu.Unlock()
		return ErrInvalid
	}

	f.state = StateSubmitting
	f.fieldErrs = nil
	f.errMsg = ""
	gen := f.generation
	mode, key, draft := f.mode, f.key, f.draft
	f.mu.Unlock()

	err := f.submit(ctx, mode, key, draft)

	f.mu.Lock()
	if gen != f.generation {
		// Cancelled or reopened while in flight; drop the outcome.
		f.mu.Unlock()
		return err
	}
	if err != nil {
		f.state = StateOpen
		f.errMsg = api.UserMessage(err)
		f.mu.Unlock()
		return err
	}
	f.resetLocked()
	f.mu.Unlock()

	if f.onSuccess != nil {
		f.onSuccess()
	}
	return nil
}

// Snapshot copies the form state for rendering.
func (f *Form[D]) Snapshot() Snapshot[D] {
	f.mu.Lock()
	defer f.mu.Unlock()
	fieldErrs := make(map[string]string, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		fieldErrs[k] = v
	}
	return Snapshot[D]{
		State:     f.state,
		Mode:      f.mode,
		Key:       f.key,
		Draft:     f.draft,
		Err:       f.errMsg,
		FieldErrs: fieldErrs,
	}
}

// check runs struct validation and flattens the result into per-field
// messages keyed by the struct field name.
func (f *Form[D]) check(draft D) map[string]string {
	err := f.validate.Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": "invalid input"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

// fieldMessage renders one rule violation as operator-facing text.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
