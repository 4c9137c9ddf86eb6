// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

/*
Package middleware provides HTTP middleware shared by the status server.

Key Components:

  - NoCache: Cache-Control/Pragma/Expires headers on every response
  - RequestID: UUID-based request tracking (X-Request-ID)
  - PrometheusMetrics: request count, latency and in-flight gauge

All middleware uses the standard func(http.Handler) http.Handler shape so it
plugs directly into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.NoCache)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
