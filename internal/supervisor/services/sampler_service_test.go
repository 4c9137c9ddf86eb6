// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/heartbeat/internal/clock"
)

type recordingSampler struct {
	mu    sync.Mutex
	times []time.Time
}

func (r *recordingSampler) Sample(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times = append(r.times, now)
}

func (r *recordingSampler) snapshot() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.times...)
}

func TestStatusSamplerService_Serve(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := &recordingSampler{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake.OnAfter(func(now time.Time) {
		if now.Sub(start) >= 15*time.Second {
			cancel()
		}
	})

	svc := NewStatusSamplerService(rec, 5*time.Second, fake)
	err := svc.Serve(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve() = %v, want context.Canceled", err)
	}

	got := rec.snapshot()
	if len(got) < 3 {
		t.Fatalf("expected at least 3 samples, got %d", len(got))
	}
	for i, ts := range got[:3] {
		want := start.Add(time.Duration(i) * 5 * time.Second)
		if !ts.Equal(want) {
			t.Errorf("sample %d at %v, want %v", i, ts, want)
		}
	}
}

func TestNewStatusSamplerService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewStatusSamplerService(&recordingSampler{}, 0, nil)
	if svc.interval != 5*time.Second {
		t.Errorf("interval = %v, want 5s", svc.interval)
	}
	if _, ok := svc.clock.(clock.Real); !ok {
		t.Errorf("clock = %T, want clock.Real", svc.clock)
	}
	if svc.String() != "status-sampler" {
		t.Errorf("String() = %q", svc.String())
	}
}
