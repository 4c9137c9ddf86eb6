// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package supervisor

import (
	"sync"
	"time"

	"github.com/tomtom215/heartbeat/internal/bot"
)

// FatalError describes the current fatal condition.
type FatalError struct {
	Kind    bot.ErrorKind
	Message string
	Since   time.Time
}

// State is the shared supervisor state. It is written only by the
// BotSupervisor loop and read by the status reporter.
//
// Two independent locks guard it: fatalMu covers the fatal descriptor and
// the retry count, handleMu covers the current client handle. No method
// holds both. Readers get copies.
type State struct {
	fatalMu    sync.RWMutex
	fatal      *FatalError
	retryCount int

	handleMu sync.RWMutex
	handle   bot.Client
}

// NewState returns an empty state: not fatal, no handle, zero retries.
func NewState() *State {
	return &State{}
}

// Fatal returns a copy of the fatal descriptor and whether one is set.
func (s *State) Fatal() (FatalError, bool) {
	s.fatalMu.RLock()
	defer s.fatalMu.RUnlock()
	if s.fatal == nil {
		return FatalError{}, false
	}
	return *s.fatal, true
}

// SetFatal records a fatal condition. The retry count is left unchanged.
// Callers clear the handle first so the two are never both set.
func (s *State) SetFatal(kind bot.ErrorKind, message string, since time.Time) {
	s.fatalMu.Lock()
	defer s.fatalMu.Unlock()
	s.fatal = &FatalError{Kind: kind, Message: message, Since: since}
}

// ClearFatal clears the fatal descriptor, its timestamp and the retry count
// in one critical section.
func (s *State) ClearFatal() {
	s.fatalMu.Lock()
	defer s.fatalMu.Unlock()
	s.fatal = nil
	s.retryCount = 0
}

// RetryCount returns the number of consecutive transient failures.
func (s *State) RetryCount() int {
	s.fatalMu.RLock()
	defer s.fatalMu.RUnlock()
	return s.retryCount
}

// IncrementRetry bumps the retry count and returns the new value.
func (s *State) IncrementRetry() int {
	s.fatalMu.Lock()
	defer s.fatalMu.Unlock()
	s.retryCount++
	return s.retryCount
}

// ResetRetry zeroes the retry count.
func (s *State) ResetRetry() {
	s.fatalMu.Lock()
	defer s.fatalMu.Unlock()
	s.retryCount = 0
}

// Handle returns the live client, or nil between attempts.
func (s *State) Handle() bot.Client {
	s.handleMu.RLock()
	defer s.handleMu.RUnlock()
	return s.handle
}

// SetHandle publishes c as the live client.
func (s *State) SetHandle(c bot.Client) {
	s.handleMu.Lock()
	defer s.handleMu.Unlock()
	s.handle = c
}

// ClearHandle removes the live client.
func (s *State) ClearHandle() {
	s.SetHandle(nil)
}
