// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/heartbeat/internal/api"
	"github.com/tomtom215/heartbeat/internal/clock"
	"github.com/tomtom215/heartbeat/internal/config"
	"github.com/tomtom215/heartbeat/internal/supervisor"
	ws "github.com/tomtom215/heartbeat/internal/websocket"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "5055")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("RECOVERY_THRESHOLD", "15m")
	t.Setenv("RATE_LIMIT_REQUESTS", "1")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestLoopConfig(t *testing.T) {
	cfg := loadTestConfig(t)
	lc := loopConfig(cfg)

	if lc.RecoveryThreshold != 15*time.Minute {
		t.Errorf("RecoveryThreshold = %v, want 15m", lc.RecoveryThreshold)
	}
	if lc.Retry.BaseDelay != 2*time.Second || lc.Retry.MaxDelay != 300*time.Second || lc.Retry.Jitter != 0.2 {
		t.Errorf("Retry = %+v", lc.Retry)
	}
	if lc.PreflightTimeout != cfg.Bot.PreflightTimeout || lc.PollInterval != time.Second {
		t.Errorf("loop config = %+v", lc)
	}

	tc := treeConfig(cfg)
	if tc.FailureThreshold != cfg.Tree.FailureThreshold || tc.ShutdownTimeout != cfg.Tree.ShutdownTimeout {
		t.Errorf("tree config = %+v", tc)
	}
}

func TestNewHTTPServer(t *testing.T) {
	cfg := loadTestConfig(t)
	tracker := api.NewStatusTracker(supervisor.NewState(), clock.Real{})

	srv := newHTTPServer(cfg, tracker, ws.NewHub())
	if srv.Addr != "0.0.0.0:5055" {
		t.Errorf("Addr = %q, want 0.0.0.0:5055", srv.Addr)
	}
	if srv.ReadTimeout != cfg.Server.ReadTimeout || srv.IdleTimeout != cfg.Server.IdleTimeout {
		t.Errorf("timeouts = %v/%v", srv.ReadTimeout, srv.IdleTimeout)
	}

	// The configured limit of one request per window is applied.
	codes := make([]int, 2)
	for i := range codes {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes[i] = rr.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 429]", codes)
	}
}

func TestNewBotSupervisor(t *testing.T) {
	cfg := loadTestConfig(t)
	loop := newBotSupervisor(cfg, supervisor.NewState())
	if loop.String() != "bot-supervisor" {
		t.Errorf("String() = %q", loop.String())
	}
}
