// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

// Package clock abstracts wall-clock time so the supervisor loop and the
// status reporter can be driven by simulated time in tests.
package clock

import (
	"sync"
	"time"
)

// Clock is the subset of the time package used by the supervisor and reporter.
// Now is also compatible with backoff.Clock from cenkalti/backoff.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// Real is the production clock backed by the time package.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time { return time.Now() }

// After returns time.After(d).
func (Real) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Fake is a simulated clock. After advances the clock by d and fires
// immediately, so a loop that sleeps through Fake runs through simulated
// seconds without real waiting.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	onAfter func(now time.Time)
}

// NewFake creates a fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the simulated time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// After advances the simulated time by d and returns a channel that already
// holds the new time.
func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	if d > 0 {
		f.now = f.now.Add(d)
	}
	now := f.now
	hook := f.onAfter
	f.mu.Unlock()

	if hook != nil {
		hook(now)
	}

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Advance moves the simulated time forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set moves the simulated time to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// OnAfter registers a hook invoked (outside the lock) after every After call
// with the new simulated time. Tests use it to stop a loop at a given instant.
func (f *Fake) OnAfter(hook func(now time.Time)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onAfter = hook
}
