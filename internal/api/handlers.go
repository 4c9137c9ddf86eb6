// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	ws "github.com/tomtom215/heartbeat/internal/websocket"
)

// HandlerConfig configures the status endpoints.
type HandlerConfig struct {
	// GracePeriod is how long the bot may be offline before /health fails.
	// Default: 120s
	GracePeriod time.Duration

	// ServiceName is reported by /health.
	// Default: "discord-bot-heartbeat"
	ServiceName string

	// PageRefresh is the HTML page auto-refresh interval.
	// Default: 30s
	PageRefresh time.Duration
}

// DefaultHandlerConfig returns the default handler configuration.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		GracePeriod: 120 * time.Second,
		ServiceName: "discord-bot-heartbeat",
		PageRefresh: 30 * time.Second,
	}
}

// Handler serves the status endpoints.
type Handler struct {
	tracker *StatusTracker
	config  HandlerConfig
	page    *template.Template
	stats   func() processStats

	hub             *ws.Hub
	upgrader        websocket.Upgrader
	registerTimeout time.Duration
}

// NewHandler creates a handler reading from tracker. Zero config fields take
// defaults.
func NewHandler(tracker *StatusTracker, config HandlerConfig, opts ...HandlerOption) *Handler {
	def := DefaultHandlerConfig()
	if config.GracePeriod <= 0 {
		config.GracePeriod = def.GracePeriod
	}
	if config.ServiceName == "" {
		config.ServiceName = def.ServiceName
	}
	if config.PageRefresh <= 0 {
		config.PageRefresh = def.PageRefresh
	}
	h := &Handler{
		tracker: tracker,
		config:  config,
		page:    statusPage,
		stats:   readProcessStats,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health reports 503 while the supervisor is in a fatal state or the bot has
// been offline longer than the grace period, and 200 otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.tracker.Refresh()
	now := h.tracker.Now()
	appRuntime := now.Sub(h.tracker.StartTime()).Seconds()

	// The fatal descriptor is authoritative over the derived online flag.
	if fe, fatal := h.tracker.Fatal(); fatal {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":      "unhealthy",
			"bot_online":  false,
			"timestamp":   formatTimestamp(now),
			"error":       "Fatal error: " + fe.Message,
			"app_runtime": appRuntime,
			"fatal":       true,
			"error_time":  formatTimestamp(fe.Since),
		})
		return
	}

	offlineDuration := 0.0
	if status.OfflineSince != nil {
		offlineDuration = now.Sub(*status.OfflineSince).Seconds()
	}

	grace := h.config.GracePeriod.Seconds()
	if !status.Online && offlineDuration > grace {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":           "unhealthy",
			"bot_online":       false,
			"timestamp":        formatTimestamp(now),
			"error":            fmt.Sprintf("Bot offline for %.0fs (grace: %.0fs)", offlineDuration, grace),
			"offline_duration": offlineDuration,
			"app_runtime":      appRuntime,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"bot_online":       status.Online,
		"timestamp":        formatTimestamp(now),
		"heartbeat":        true,
		"offline_duration": offlineDuration,
		"app_runtime":      appRuntime,
		"service":          h.config.ServiceName,
	})
}

// Ready reports whether the bot is online.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.tracker.Refresh()
	now := h.tracker.Now()

	if status.Online {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":     "ready",
			"bot_online": true,
			"timestamp":  formatTimestamp(now),
		})
		return
	}
	respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
		"status":     "not_ready",
		"bot_online": false,
		"timestamp":  formatTimestamp(now),
	})
}

// Status returns the full status record.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.tracker.Refresh())
}

// Ping answers without touching the bot state.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "pong",
		"timestamp": formatTimestamp(h.tracker.Now()),
		"service":   "active",
	})
}
