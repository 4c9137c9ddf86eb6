// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/tomtom215/heartbeat/internal/logging"
)

//go:embed templates/status.html
var templateFS embed.FS

var statusPage = template.Must(template.ParseFS(templateFS, "templates/status.html"))

// startTimeLayout formats the first-online time on the status page.
const startTimeLayout = "02/01/2006 at 15:04:05"

type pageData struct {
	Status         Status
	Uptime         string
	StartTime      string
	RefreshSeconds int
	Process        processStats
}

// Index renders the HTML status page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	status := h.tracker.Refresh()

	data := pageData{
		Status:         status,
		RefreshSeconds: int(h.config.PageRefresh.Seconds()),
		Process:        h.stats(),
	}
	if status.FirstOnlineTime != nil {
		data.Uptime = formatUptime(h.tracker.Now().Sub(*status.FirstOnlineTime))
		data.StartTime = status.FirstOnlineTime.Format(startTimeLayout)
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render status page")
		http.Error(w, "failed to render status page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write status page")
	}
}

// formatUptime renders d as "Xh Ym", or "Ym" under an hour.
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
