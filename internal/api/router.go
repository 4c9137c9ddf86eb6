// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/heartbeat/internal/middleware"
)

// Router wires the handlers into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	probes        healthcheck.Handler
}

// NewRouter creates a router. A nil mw uses the default middleware config.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		probes:        newProbes(handler.tracker),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, in order. NoCache runs before anything that can
	// short-circuit so rejections carry the headers too.
	r.Use(middleware.NoCache)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger())
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	// Status endpoints are polled by uptime monitors.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/", router.handler.Index)
		r.Get("/health", router.handler.Health)
		r.Get("/ready", router.handler.Ready)
		r.Get("/api/status", router.handler.Status)
		r.Get("/ping", router.handler.Ping)
	})

	// Probes and scraping are not rate limited.
	r.Get("/healthz/live", router.probes.LiveEndpoint)
	r.Get("/healthz/ready", router.probes.ReadyEndpoint)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", router.handler.StatusStream)

	return r
}
