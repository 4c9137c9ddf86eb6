// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

// Package metrics defines the Prometheus metrics exported on /metrics.
//
// Metrics are registered on the default registry with promauto at package
// init. Two groups exist:
//
// Supervisor (written by the restart loop):
//   - heartbeat_connection_attempts_total
//   - heartbeat_connection_failures_total{class}
//   - heartbeat_retry_count
//   - heartbeat_backoff_delay_seconds
//   - heartbeat_fatal_error_active{kind}
//   - heartbeat_recovery_preflights_total{result}
//
// Bot status (written by the status reporter and sampler):
//   - heartbeat_bot_online, heartbeat_bot_guilds, heartbeat_bot_offline_seconds
//   - heartbeat_bot_reconnects_total
//
// HTTP (written by middleware.PrometheusMetrics):
//   - api_requests_total{method,endpoint,status_code}
//   - api_request_duration_seconds{method,endpoint}
//   - api_active_requests
//   - api_rate_limit_hits_total{endpoint}
package metrics
