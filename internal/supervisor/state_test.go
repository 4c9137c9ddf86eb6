// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package supervisor

import (
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/heartbeat/internal/bot"
)

func TestState_Empty(t *testing.T) {
	t.Parallel()

	s := NewState()
	if _, fatal := s.Fatal(); fatal {
		t.Error("new state should not be fatal")
	}
	if s.RetryCount() != 0 {
		t.Errorf("RetryCount() = %d, want 0", s.RetryCount())
	}
	if s.Handle() != nil {
		t.Error("new state should have no handle")
	}
}

func TestState_FatalLifecycle(t *testing.T) {
	t.Parallel()

	s := NewState()
	since := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s.IncrementRetry()
	s.IncrementRetry()
	s.SetFatal(bot.KindInvalidToken, "Invalid token: 4004", since)

	fe, fatal := s.Fatal()
	if !fatal {
		t.Fatal("expected fatal state")
	}
	if fe.Kind != bot.KindInvalidToken || fe.Message != "Invalid token: 4004" || !fe.Since.Equal(since) {
		t.Errorf("Fatal() = %+v", fe)
	}
	if s.RetryCount() != 2 {
		t.Errorf("SetFatal must not change retry count, got %d", s.RetryCount())
	}

	s.ClearFatal()
	if _, fatal := s.Fatal(); fatal {
		t.Error("ClearFatal should clear the descriptor")
	}
	if s.RetryCount() != 0 {
		t.Errorf("ClearFatal should reset retry count, got %d", s.RetryCount())
	}
}

func TestState_FatalReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.SetFatal(bot.KindMissingToken, "Missing token", time.Now())

	fe, _ := s.Fatal()
	fe.Message = "mutated"

	again, _ := s.Fatal()
	if again.Message != "Missing token" {
		t.Errorf("snapshot mutation leaked into state: %q", again.Message)
	}
}

func TestState_Handle(t *testing.T) {
	t.Parallel()

	s := NewState()
	c := bot.NewMockClient("b", 1, nil)

	s.SetHandle(c)
	if s.Handle() != c {
		t.Error("Handle() should return the published client")
	}
	s.ClearHandle()
	if s.Handle() != nil {
		t.Error("ClearHandle() should remove the client")
	}
}

func TestState_RetryCount(t *testing.T) {
	t.Parallel()

	s := NewState()
	for i := 1; i <= 5; i++ {
		if got := s.IncrementRetry(); got != i {
			t.Fatalf("IncrementRetry() = %d, want %d", got, i)
		}
	}
	s.ResetRetry()
	if s.RetryCount() != 0 {
		t.Errorf("RetryCount() after reset = %d", s.RetryCount())
	}
}

// TestState_ConcurrentAccess exercises both lock domains under -race.
func TestState_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewState()
	c := bot.NewMockClient("b", 1, nil)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.SetHandle(c)
			s.IncrementRetry()
			s.ClearHandle()
			s.SetFatal(bot.KindUnknown, "x", time.Now())
			s.ClearFatal()
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if h := s.Handle(); h != nil {
					_ = h.IsReady()
				}
				_, _ = s.Fatal()
				_ = s.RetryCount()
			}
		}()
	}

	wg.Wait()
}
