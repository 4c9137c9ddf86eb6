// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

/*
Package api serves the bot status over HTTP.

Routes:

	GET /              HTML status page, auto-refreshing
	GET /health        200 healthy, 503 on a fatal error or when offline past the grace period
	GET /ready         200 when the bot is online, 503 otherwise
	GET /api/status    the Status record as JSON
	GET /ping          liveness of the HTTP layer only
	GET /healthz/live  heptiolabs/healthcheck liveness probe
	GET /healthz/ready heptiolabs/healthcheck readiness probe
	GET /metrics       Prometheus exposition
	GET /ws            live status stream (websocket)

Every response is marked uncacheable and carries an X-Request-ID header.

# Status tracking

StatusTracker derives the presentation record (first online time, offline
since, reconnect count) from supervisor.State each time a request arrives,
and on a timer through the StatusSampler service. It reads the supervisor
state but never changes it; recovery happens only in the supervisor loop.
A panic while reading the client handle degrades the record to offline
instead of failing the request.

# Usage

	tracker := api.NewStatusTracker(state, clock.Real{})
	handler := api.NewHandler(tracker, api.HandlerConfig{GracePeriod: 120 * time.Second})
	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
	srv := &http.Server{Addr: ":5000", Handler: router.Setup()}
*/
package api
