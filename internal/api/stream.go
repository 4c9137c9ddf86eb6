// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/heartbeat/internal/logging"
	ws "github.com/tomtom215/heartbeat/internal/websocket"
)

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithStatusStream enables GET /ws, pushing status changes through hub.
// allowedOrigins follows the CORS setting; "*" accepts any origin.
func WithStatusStream(hub *ws.Hub, allowedOrigins []string) HandlerOption {
	return func(h *Handler) {
		h.hub = hub
		h.registerTimeout = 5 * time.Second
		h.upgrader = websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		}
	}
}

// originChecker accepts same-host requests, requests without an Origin
// header and the configured origins.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

// StatusStream upgrades the connection and streams status records. The
// current status is sent first.
func (h *Handler) StatusStream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		http.NotFound(w, r)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logging.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.registerTimeout)
	defer cancel()

	client := ws.NewClient(h.hub, conn)
	if err := h.hub.Register(ctx, client); err != nil {
		logging.Warn().Err(err).Msg("websocket client rejected, hub unavailable")
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "status stream unavailable")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	h.hub.Send(client, ws.Message{Type: ws.MessageTypeStatus, Data: h.tracker.Refresh()})
	client.Start()
}
