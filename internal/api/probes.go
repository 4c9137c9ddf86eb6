// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"errors"
	"fmt"

	"github.com/heptiolabs/healthcheck"
)

// maxGoroutines fails the liveness probe on a goroutine leak.
const maxGoroutines = 10000

var errBotNotReady = errors.New("bot is not connected")

// newProbes builds the Kubernetes-style liveness and readiness checks.
// Liveness only covers the process; readiness requires a ready bot and no
// fatal condition.
func newProbes(tracker *StatusTracker) healthcheck.Handler {
	probes := healthcheck.NewHandler()

	probes.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(maxGoroutines))

	probes.AddReadinessCheck("supervisor", func() error {
		if fe, fatal := tracker.Fatal(); fatal {
			return fmt.Errorf("fatal %s since %s", fe.Kind.Label(), formatTimestamp(fe.Since))
		}
		return nil
	})
	probes.AddReadinessCheck("bot", func() error {
		if !tracker.Refresh().Online {
			return errBotNotReady
		}
		return nil
	})

	return probes
}
