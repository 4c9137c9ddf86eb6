// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

/*
Package services provides suture.Service wrappers for Heartbeat components.

Each wrapper implements suture's Serve(ctx) error and fmt.Stringer.

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Returns listener failures so main can exit non-zero

Status Sampler (StatusSamplerService):
  - Periodically refreshes the status reporter's derived fields
  - Keeps Prometheus bot gauges current without HTTP traffic
*/
package services
