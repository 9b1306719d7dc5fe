// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forms

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"educonsole/internal/api"
)

type gradeDraft struct {
	GradeName string `validate:"required,min=2"`
	Status    bool
}

func TestForm_CreateSubmitSuccess(t *testing.T) {
	var gotMode Mode
	var gotDraft gradeDraft
	var invalidated bool
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		gotMode = mode
		gotDraft = draft
		return nil
	}, func() { invalidated = true })

	form.OpenCreate(gradeDraft{Status: true})
	form.SetDraft(gradeDraft{GradeName: "Lớp 1", Status: true})
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if gotMode != ModeCreate || gotDraft.GradeName != "Lớp 1" {
		t.Errorf("submitted mode=%v draft=%+v", gotMode, gotDraft)
	}
	if !invalidated {
		t.Error("onSuccess was not called")
	}
	if snap := form.Snapshot(); snap.State != StateClosed || snap.Draft.GradeName != "" {
		t.Errorf("snapshot after success = %+v, want closed and reset", snap)
	}
}

func TestForm_ValidationFailureSkipsNetwork(t *testing.T) {
	var calls int
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		calls++
		return nil
	}, nil)

	form.OpenCreate(gradeDraft{})
	err := form.Submit(context.Background())
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if calls != 0 {
		t.Errorf("submit func called %d times for an invalid draft", calls)
	}

	snap := form.Snapshot()
	if snap.State != StateOpen {
		t.Errorf("state = %v, want still open", snap.State)
	}
	if snap.FieldErrs["GradeName"] == "" {
		t.Errorf("field errors = %v, want message for GradeName", snap.FieldErrs)
	}
}

func TestForm_ServerFailureReopensWithMessage(t *testing.T) {
	var invalidated bool
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		return &api.Error{Status: http.StatusConflict, Msg: "grade already exists"}
	}, func() { invalidated = true })

	form.OpenCreate(gradeDraft{GradeName: "Lớp 1"})
	if err := form.Submit(context.Background()); err == nil {
		t.Fatal("expected submit error")
	}

	snap := form.Snapshot()
	if snap.State != StateOpen {
		t.Fatalf("state = %v, want open for retry", snap.State)
	}
	if snap.Err != "grade already exists" {
		t.Errorf("err = %q, want server msg", snap.Err)
	}
	if snap.Draft.GradeName != "Lớp 1" {
		t.Errorf("draft = %+v, want preserved", snap.Draft)
	}
	if invalidated {
		t.Error("onSuccess ran on failure")
	}
}

func TestForm_DuplicateSubmitRejected(t *testing.T) {
	release := make(chan struct{})
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		<-release
		return nil
	}, nil)

	form.OpenCreate(gradeDraft{GradeName: "Lớp 1"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		form.Submit(context.Background())
	}()

	// Let the first submit reach the in-flight state.
	deadline := time.Now().Add(time.Second)
	for form.Snapshot().State != StateSubmitting {
		if time.Now().After(deadline) {
			t.Fatal("first submit never reached StateSubmitting")
		}
		time.Sleep(time.Millisecond)
	}

	if err := form.Submit(context.Background()); !errors.Is(err, ErrSubmitting) {
		t.Errorf("second submit err = %v, want ErrSubmitting", err)
	}
	close(release)
	wg.Wait()
}

func TestForm_CancelDuringSubmitDiscardsOutcome(t *testing.T) {
	release := make(chan struct{})
	var invalidated bool
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		<-release
		return nil
	}, func() { invalidated = true })

	form.OpenCreate(gradeDraft{GradeName: "Lớp 1"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		form.Submit(context.Background())
	}()

	deadline := time.Now().Add(time.Second)
	for form.Snapshot().State != StateSubmitting {
		if time.Now().After(deadline) {
			t.Fatal("submit never reached StateSubmitting")
		}
		time.Sleep(time.Millisecond)
	}

	form.Cancel()
	close(release)
	<-done

	if invalidated {
		t.Error("onSuccess ran after cancel")
	}
	if snap := form.Snapshot(); snap.State != StateClosed {
		t.Errorf("state = %v, want closed", snap.State)
	}
}

func TestForm_SubmitWhenClosed(t *testing.T) {
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		return nil
	}, nil)
	if err := form.Submit(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestForm_OpenEditPrefills(t *testing.T) {
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		if mode != ModeEdit || key != "lop-1" {
			t.Errorf("mode=%v key=%q", mode, key)
		}
		return nil
	}, nil)

	form.OpenEdit("lop-1", gradeDraft{GradeName: "Lớp 1", Status: true})
	snap := form.Snapshot()
	if snap.Mode != ModeEdit || snap.Key != "lop-1" || snap.Draft.GradeName != "Lớp 1" {
		t.Errorf("snapshot = %+v", snap)
	}
	if err := form.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestForm_ReopenClearsStaleError(t *testing.T) {
	form := New(func(ctx context.Context, mode Mode, key string, draft gradeDraft) error {
		return &api.Error{Status: http.StatusBadRequest, Msg: "bad"}
	}, nil)

	form.OpenCreate(gradeDraft{GradeName: "Lớp 1"})
	form.Submit(context.Background())
	form.OpenCreate(gradeDraft{})

	if snap := form.Snapshot(); snap.Err != "" || len(snap.FieldErrs) != 0 {
		t.Errorf("snapshot after reopen = %+v, want clean slate", snap)
	}
}
