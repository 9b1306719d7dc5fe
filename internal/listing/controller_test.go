// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"educonsole/internal/api"
	"educonsole/internal/models"
)

func pageResult(items []string, page, total int) api.ListResult[string] {
	return api.ListResult[string]{
		Items: items,
		Pagination: &models.Pagination{
			CurrentPage: page,
			TotalPages:  (total + 9) / 10,
			PageSizes:   10,
			TotalItems:  total,
		},
	}
}

func TestController_ApplyFetchesAndSettles(t *testing.T) {
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		return pageResult([]string{"a", "b"}, q.Page, 2), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{Page: 1, PageSize: 10})
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}

	snap := ctrl.Snapshot()
	if len(snap.Records) != 2 {
		t.Fatalf("records = %v", snap.Records)
	}
	if snap.Loading {
		t.Error("still loading after Wait")
	}
	if snap.Err != "" {
		t.Errorf("err = %q", snap.Err)
	}
	if snap.Pagination.TotalItems != 2 {
		t.Errorf("pagination = %+v", snap.Pagination)
	}
}

func TestController_NewestInputWins(t *testing.T) {
	release := make(chan struct{})
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		if q.Page == 1 {
			// The first fetch ignores cancellation and answers late, after
			// the second has settled. Its result must still be discarded.
			<-release
			return pageResult([]string{"stale"}, 1, 1), nil
		}
		return pageResult([]string{"fresh"}, q.Page, 1), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{Page: 1, PageSize: 10})
	ctrl.Apply(Query{Page: 2, PageSize: 10})
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	close(release)

	// Give the superseded fetch a chance to (wrongly) land.
	time.Sleep(20 * time.Millisecond)

	snap := ctrl.Snapshot()
	if len(snap.Records) != 1 || snap.Records[0] != "fresh" {
		t.Fatalf("records = %v, want result of the newest input", snap.Records)
	}
}

func TestController_SupersedeCancelsInFlightFetch(t *testing.T) {
	cancelled := make(chan struct{})
	var once sync.Once
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		if q.Page == 1 {
			<-ctx.Done()
			once.Do(func() { close(cancelled) })
			return api.ListResult[string]{}, ctx.Err()
		}
		return pageResult(nil, q.Page, 0), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{Page: 1, PageSize: 10})
	ctrl.Apply(Query{Page: 2, PageSize: 10})

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded fetch context was not cancelled")
	}
}

func TestController_PageSizeChangeResetsPage(t *testing.T) {
	var got Query
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		got = q
		return pageResult(nil, q.Page, 0), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{Page: 7, PageSize: 10})
	ctrl.SetPageSize(50)
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got.Page != 1 || got.PageSize != 50 {
		t.Errorf("query = %+v, want page reset to 1", got)
	}
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	var got Query
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		got = q
		return pageResult(nil, q.Page, 0), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{Page: 3, PageSize: 10})
	ctrl.SetFilters(Filters{Keyword: "math"})
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got.Page != 1 || got.Filters.Keyword != "math" {
		t.Errorf("query = %+v", got)
	}
}

func TestController_StaleRecordsSurviveFetchError(t *testing.T) {
	fail := false
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		if fail {
			return api.ListResult[string]{}, errors.New("connection refused")
		}
		return pageResult([]string{"kept"}, 1, 1), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{Page: 1, PageSize: 10})
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}

	fail = true
	ctrl.Invalidate()
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}

	snap := ctrl.Snapshot()
	if len(snap.Records) != 1 || snap.Records[0] != "kept" {
		t.Errorf("records = %v, want previous page kept", snap.Records)
	}
	if snap.Err == "" {
		t.Error("expected an error message after failed refetch")
	}

	// A later success clears the error.
	fail = false
	ctrl.Invalidate()
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if snap := ctrl.Snapshot(); snap.Err != "" {
		t.Errorf("err = %q after successful refetch", snap.Err)
	}
}

func TestController_InvalidateKeepsQuery(t *testing.T) {
	var calls int
	var got Query
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		calls++
		got = q
		return pageResult(nil, q.Page, 0), nil
	})
	defer ctrl.Close()

	active := true
	ctrl.Apply(Query{Page: 4, PageSize: 20, Filters: Filters{Keyword: "go", Status: &active}})
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	ctrl.Invalidate()
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if got.Page != 4 || got.PageSize != 20 || got.Filters.Keyword != "go" {
		t.Errorf("query = %+v, want unchanged inputs", got)
	}
}

func TestController_MissingPaginationFallsBack(t *testing.T) {
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		return api.ListResult[string]{Items: []string{"x", "y", "z"}}, nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{})
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	snap := ctrl.Snapshot()
	if snap.Pagination.TotalItems != 3 || snap.Pagination.TotalPages != 1 {
		t.Errorf("pagination = %+v, want single-page fallback", snap.Pagination)
	}
}

func TestController_CloseRejectsInput(t *testing.T) {
	var calls int
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		calls++
		return pageResult(nil, 1, 0), nil
	})

	ctrl.Close()
	ctrl.Apply(Query{Page: 1})
	ctrl.Invalidate()
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d after Close", calls)
	}
}

func TestController_WaitHonorsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		<-block
		return pageResult(nil, 1, 0), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := ctrl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("wait err = %v, want deadline exceeded", err)
	}
}

func TestQuery_EncodeParseRoundTrip(t *testing.T) {
	inactive := false
	queries := []Query{
		{Page: 1, PageSize: DefaultPageSize},
		{Page: 3, PageSize: 50, Filters: Filters{Keyword: "toán"}},
		{Page: 1, PageSize: DefaultPageSize, Filters: Filters{Status: &inactive}},
	}
	for _, want := range queries {
		got := ParseQuery(want.Encode())
		if got.Page != want.Page || got.PageSize != want.PageSize ||
			got.Filters.Keyword != want.Filters.Keyword {
			t.Errorf("round trip %+v -> %+v", want, got)
		}
		switch {
		case want.Filters.Status == nil && got.Filters.Status != nil:
			t.Errorf("status appeared in round trip of %+v", want)
		case want.Filters.Status != nil && (got.Filters.Status == nil || *got.Filters.Status != *want.Filters.Status):
			t.Errorf("status lost in round trip of %+v", want)
		}
	}
}

func TestQuery_DefaultsAreOmittedFromURL(t *testing.T) {
	values := Query{Page: 1, PageSize: DefaultPageSize}.Encode()
	if len(values) != 0 {
		t.Errorf("encoded defaults = %v, want empty", values)
	}
}

func TestParseQuery_IgnoresGarbage(t *testing.T) {
	q := ParseQuery(map[string][]string{
		"page":     {"banana"},
		"pageSize": {"-5"},
		"status":   {"maybe"},
	})
	if q.Page != 1 || q.PageSize != DefaultPageSize || q.Filters.Status != nil {
		t.Errorf("query = %+v, want defaults", q)
	}
}

func TestController_UnauthorizedFetchFlagsSnapshot(t *testing.T) {
	failing := true
	ctrl := NewController(func(ctx context.Context, q Query) (api.ListResult[string], error) {
		if failing {
			return api.ListResult[string]{}, api.ErrUnauthorized
		}
		return pageResult([]string{"a"}, q.Page, 1), nil
	})
	defer ctrl.Close()

	ctrl.Apply(Query{Page: 1, PageSize: 10})
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}

	snap := ctrl.Snapshot()
	if !snap.Unauthorized {
		t.Fatal("snapshot should flag the 401 fetch")
	}
	if snap.Err != "" {
		t.Errorf("err = %q, want no recoverable error text for a dead session", snap.Err)
	}

	// A fetch after re-login clears the flag.
	failing = false
	ctrl.Invalidate()
	if err := ctrl.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if snap := ctrl.Snapshot(); snap.Unauthorized {
		t.Error("a successful fetch should reset the unauthorized flag")
	}
}
