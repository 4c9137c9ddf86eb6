// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package supervisor

import (
	"testing"
	"time"

	"github.com/tomtom215/heartbeat/internal/clock"
)

func TestRetryPolicy_Ceiling(t *testing.T) {
	t.Parallel()

	p := NewRetryPolicy(DefaultRetryConfig(), clock.Real{})

	tests := []struct {
		retry int
		want  time.Duration
	}{
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 16 * time.Second},
		{6, 128 * time.Second},
		{7, 256 * time.Second},
		{8, 300 * time.Second},
		{9, 300 * time.Second},
		{50, 300 * time.Second},
	}

	for _, tt := range tests {
		if got := p.Ceiling(tt.retry); got != tt.want {
			t.Errorf("Ceiling(%d) = %v, want %v", tt.retry, got, tt.want)
		}
	}
}

func TestRetryPolicy_CeilingNonDecreasing(t *testing.T) {
	t.Parallel()

	p := NewRetryPolicy(DefaultRetryConfig(), clock.Real{})
	prev := time.Duration(0)
	for n := 1; n <= 40; n++ {
		c := p.Ceiling(n)
		if c < prev {
			t.Fatalf("Ceiling(%d) = %v < Ceiling(%d) = %v", n, c, n-1, prev)
		}
		prev = c
	}
}

func TestRetryPolicy_NextWithinJitterBounds(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	p := NewRetryPolicy(cfg, clock.Real{})
	upper := p.UpperBound()
	if upper != 360*time.Second {
		t.Fatalf("UpperBound() = %v, want 360s", upper)
	}

	// Run the schedule several times to sample the jitter.
	for round := 0; round < 20; round++ {
		p.Reset()
		for n := 1; n <= 15; n++ {
			d := p.Next()
			ceiling := p.Ceiling(n)
			lo := time.Duration(float64(ceiling) * (1 - cfg.Jitter))
			hi := time.Duration(float64(ceiling)*(1+cfg.Jitter)) + time.Nanosecond
			if d < lo || d > hi {
				t.Fatalf("retry %d: delay %v outside [%v, %v]", n, d, lo, hi)
			}
			if d > upper {
				t.Fatalf("retry %d: delay %v exceeds upper bound %v", n, d, upper)
			}
		}
	}
}

func TestRetryPolicy_Reset(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	cfg.Jitter = 0
	p := NewRetryPolicy(cfg, clock.Real{})

	for i := 0; i < 5; i++ {
		p.Next()
	}
	p.Reset()
	if got := p.Next(); got != 4*time.Second {
		t.Errorf("first delay after Reset = %v, want 4s", got)
	}
}

func TestRetryPolicy_NoJitterMatchesCeiling(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	cfg.Jitter = 0
	p := NewRetryPolicy(cfg, clock.Real{})

	for n := 1; n <= 12; n++ {
		if got, want := p.Next(), p.Ceiling(n); got != want {
			t.Errorf("retry %d: Next() = %v, want %v", n, got, want)
		}
	}
}

func TestNewRetryPolicy_Defaults(t *testing.T) {
	t.Parallel()

	p := NewRetryPolicy(RetryConfig{MaxExponent: -3}, nil)
	if p.cfg.BaseDelay != 2*time.Second || p.cfg.MaxDelay != 300*time.Second || p.cfg.MaxExponent != 0 {
		t.Errorf("unexpected normalized config: %+v", p.cfg)
	}
	if got := p.Ceiling(5); got != 2*time.Second {
		t.Errorf("Ceiling with exponent cap 0 = %v, want 2s", got)
	}
}
