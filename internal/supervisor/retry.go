// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package supervisor

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/tomtom215/heartbeat/internal/clock"
)

// RetryConfig configures the transient-failure backoff.
type RetryConfig struct {
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	MaxExponent int
	Jitter      float64
}

// DefaultRetryConfig returns the standard schedule: 4s, 8s, 16s ... capped
// at 300s, each delay jittered by +/-20%.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		BaseDelay:   2 * time.Second,
		MaxDelay:    300 * time.Second,
		MaxExponent: 8,
		Jitter:      0.2,
	}
}

// RetryPolicy produces the delay before the n-th consecutive retry:
//
//	min(base * 2^min(n, maxExponent), max) * uniform(1-jitter, 1+jitter)
//
// It wraps backoff.ExponentialBackOff, starting at base*2 and doubling, with
// the cap folded into MaxInterval. Not safe for concurrent use; the
// supervisor loop owns it.
type RetryPolicy struct {
	cfg RetryConfig
	b   *backoff.ExponentialBackOff
}

// NewRetryPolicy creates a policy reading time from clk.
func NewRetryPolicy(cfg RetryConfig, clk clock.Clock) *RetryPolicy {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 300 * time.Second
	}
	if cfg.MaxExponent < 0 {
		cfg.MaxExponent = 0
	}
	if clk == nil {
		clk = clock.Real{}
	}

	p := &RetryPolicy{cfg: cfg}
	p.b = &backoff.ExponentialBackOff{
		InitialInterval:     p.Ceiling(1),
		RandomizationFactor: cfg.Jitter,
		Multiplier:          2,
		MaxInterval:         p.maxInterval(),
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               clk,
	}
	p.b.Reset()
	return p
}

// maxInterval is the largest un-jittered delay.
func (p *RetryPolicy) maxInterval() time.Duration {
	return p.Ceiling(p.cfg.MaxExponent)
}

// Ceiling returns the un-jittered delay for retry number n (n >= 1).
func (p *RetryPolicy) Ceiling(n int) time.Duration {
	if n > p.cfg.MaxExponent {
		n = p.cfg.MaxExponent
	}
	if n < 0 {
		n = 0
	}
	d := float64(p.cfg.BaseDelay) * math.Pow(2, float64(n))
	if d > float64(p.cfg.MaxDelay) {
		return p.cfg.MaxDelay
	}
	return time.Duration(d)
}

// Next returns the jittered delay for the next retry and advances the schedule.
func (p *RetryPolicy) Next() time.Duration {
	return p.b.NextBackOff()
}

// Reset restarts the schedule from the first retry.
func (p *RetryPolicy) Reset() {
	p.b.Reset()
}

// UpperBound is the largest delay Next can return.
func (p *RetryPolicy) UpperBound() time.Duration {
	return time.Duration(float64(p.maxInterval()) * (1 + p.cfg.Jitter))
}
