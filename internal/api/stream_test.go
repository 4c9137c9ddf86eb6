// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	ws "github.com/tomtom215/heartbeat/internal/websocket"
)

type streamFrame struct {
	Type string `json:"type"`
	Data Status `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) streamFrame {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline() error = %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var f streamFrame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	return f
}

func TestStatusStream_PushesChanges(t *testing.T) {
	t.Parallel()

	tracker, state, _ := newTestTracker(t)
	// Settle the initial offline record so the stream's first refresh is idle.
	tracker.Refresh()

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.Serve(ctx) }()
	tracker.OnChange(func(s Status) { hub.BroadcastJSON(ws.MessageTypeStatus, s) })

	h := NewHandler(tracker, DefaultHandlerConfig(), WithStatusStream(hub, []string{"*"}))
	h.stats = func() processStats { return processStats{} }
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	srv := httptest.NewServer(NewRouter(h, NewChiMiddleware(mw)).Setup())
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	first := readFrame(t, conn)
	if first.Type != ws.MessageTypeStatus || first.Data.Online {
		t.Fatalf("initial frame = %+v, want offline status", first)
	}

	readyClient(state, "Watcher", 4)
	tracker.Refresh()

	next := readFrame(t, conn)
	if !next.Data.Online || next.Data.BotName != "Watcher" || next.Data.Servers != 4 {
		t.Errorf("pushed status = %+v, want Watcher online in 4 servers", next.Data)
	}
}

func TestStatusStream_HubUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hub  func() *ws.Hub
	}{
		{"hub never served", ws.NewHub},
		{"hub stopped", func() *ws.Hub {
			hub := ws.NewHub()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_ = hub.Serve(ctx)
			return hub
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tracker, _, _ := newTestTracker(t)
			h := NewHandler(tracker, DefaultHandlerConfig(), WithStatusStream(tt.hub(), []string{"*"}))
			h.registerTimeout = 50 * time.Millisecond
			mw := DefaultChiMiddlewareConfig()
			mw.RateLimitDisabled = true
			srv := httptest.NewServer(NewRouter(h, NewChiMiddleware(mw)).Setup())
			t.Cleanup(srv.Close)

			conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
			if err != nil {
				t.Fatalf("Dial() error = %v", err)
			}
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			t.Cleanup(func() { _ = conn.Close() })

			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			_, _, err = conn.ReadMessage()
			if !websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
				t.Errorf("ReadMessage() error = %v, want try-again-later close", err)
			}
		})
	}
}

func TestStatusStream_DisabledWithoutHub(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, nil)
	if rr := get(router, "/ws"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no origin header", nil, "", true},
		{"wildcard", []string{"*"}, "https://elsewhere.example", true},
		{"listed origin", []string{"https://dash.example"}, "https://dash.example", true},
		{"same host", nil, "http://status.example:5000", true},
		{"foreign origin", []string{"https://dash.example"}, "https://evil.example", false},
		{"malformed origin", nil, "://", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://status.example:5000/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := originChecker(tt.allowed)(req); got != tt.want {
				t.Errorf("originChecker(%v)(%q) = %v, want %v", tt.allowed, tt.origin, got, tt.want)
			}
		})
	}
}
