// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package services

import (
	"context"
	"time"

	"github.com/tomtom215/heartbeat/internal/clock"
)

// Sampler refreshes derived status at a point in time.
type Sampler interface {
	Sample(now time.Time)
}

// StatusSamplerService calls Sampler.Sample every interval so online/offline
// transitions and the bot gauges are tracked even without HTTP traffic.
type StatusSamplerService struct {
	sampler  Sampler
	interval time.Duration
	clock    clock.Clock
}

// NewStatusSamplerService creates the sampler service. A nil clk uses the
// wall clock; a non-positive interval defaults to 5s.
func NewStatusSamplerService(sampler Sampler, interval time.Duration, clk clock.Clock) *StatusSamplerService {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &StatusSamplerService{sampler: sampler, interval: interval, clock: clk}
}

// Serve samples immediately and then on every interval until ctx is canceled.
func (s *StatusSamplerService) Serve(ctx context.Context) error {
	for {
		s.sampler.Sample(s.clock.Now())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.interval):
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (s *StatusSamplerService) String() string {
	return "status-sampler"
}
