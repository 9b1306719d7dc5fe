// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"sync"
	"time"
)

// DebounceInterval is how long keyword input must be quiet before it is
// applied. Discrete filters skip the delay entirely.
const DebounceInterval = 300 * time.Millisecond

// FilterBar composes a debounced keyword field with an immediate tri-state
// status filter and emits the combined Filters to a sink, normally a
// controller's SetFilters.
type FilterBar struct {
	apply    func(Filters)
	interval time.Duration

	mu      sync.Mutex
	filters Filters
	timer   *time.Timer
	closed  bool
}

// NewFilterBar creates a bar emitting into apply with the default debounce.
func NewFilterBar(apply func(Filters)) *FilterBar {
	return &FilterBar{apply: apply, interval: DebounceInterval}
}

// NewFilterBarInterval creates a bar with an explicit debounce interval.
func NewFilterBarInterval(apply func(Filters), interval time.Duration) *FilterBar {
	return &FilterBar{apply: apply, interval: interval}
}

// SetKeyword records a keystroke. The combined filters are emitted once the
// input has been quiet for the debounce interval; each call restarts the
// countdown, so a burst of edits produces a single fetch.
func (b *FilterBar) SetKeyword(keyword string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.filters.Keyword = keyword
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.interval, b.fire)
}

// SetStatus switches the tri-state status filter (nil means "all") and emits
// immediately, flushing any keyword edits still waiting on the timer.
func (b *FilterBar) SetStatus(status *bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.filters.Status = status
	b.emitLocked()
}

// Reset clears keyword and status together and emits the empty filter set
// once. No intermediate single-cleared state is ever observable.
func (b *FilterBar) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.filters = Filters{}
	b.emitLocked()
}

// Filters returns the current composed state, including keyword edits whose
// debounce has not fired yet.
func (b *FilterBar) Filters() Filters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

// Close stops the debounce timer so a torn-down screen cannot emit.
func (b *FilterBar) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// fire runs on the timer goroutine after a quiet period.
func (b *FilterBar) fire() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	filters := b.filters
	b.mu.Unlock()
	b.apply(filters)
}

// emitLocked cancels any pending timer and emits synchronously. Caller holds
// b.mu; apply runs outside the lock to keep sinks free to call back in.
func (b *FilterBar) emitLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	filters := b.filters
	b.mu.Unlock()
	b.apply(filters)
	b.mu.Lock()
}
