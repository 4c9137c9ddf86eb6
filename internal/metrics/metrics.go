// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FatalKinds lists the label values used by FatalErrorActive.
var FatalKinds = []string{
	"import_failure",
	"missing_token",
	"invalid_token",
	"configuration_error",
	"unknown",
}

var (
	// Supervisor Metrics
	ConnectionAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "heartbeat_connection_attempts_total",
			Help: "Total number of bot connection attempts started by the supervisor",
		},
	)

	ConnectionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heartbeat_connection_failures_total",
			Help: "Total number of connection attempts that ended in an error",
		},
		[]string{"class"}, // "transient", "panic", or a fatal kind
	)

	RetryCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "heartbeat_retry_count",
			Help: "Current number of consecutive transient failures",
		},
	)

	BackoffDelay = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "heartbeat_backoff_delay_seconds",
			Help:    "Backoff delay applied between connection attempts",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 360},
		},
	)

	FatalErrorActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "heartbeat_fatal_error_active",
			Help: "1 when the supervisor is in a fatal state of the given kind",
		},
		[]string{"kind"},
	)

	PreflightsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heartbeat_recovery_preflights_total",
			Help: "Total number of recovery preflights by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Bot Status Metrics (sampled by the status reporter)
	BotOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "heartbeat_bot_online",
			Help: "1 when the bot reports ready, 0 otherwise",
		},
	)

	BotGuilds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "heartbeat_bot_guilds",
			Help: "Number of guilds the bot is connected to",
		},
	)

	BotReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "heartbeat_bot_reconnects_total",
			Help: "Total number of online to offline transitions observed",
		},
	)

	BotOfflineSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "heartbeat_bot_offline_seconds",
			Help: "Seconds since the bot was last seen online (0 when online)",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

// RecordConnectionAttempt records the start of a connection attempt.
func RecordConnectionAttempt() {
	ConnectionAttemptsTotal.Inc()
}

// RecordConnectionFailure records a failed attempt under the given class.
func RecordConnectionFailure(class string) {
	ConnectionFailuresTotal.WithLabelValues(class).Inc()
}

// RecordBackoff records a scheduled backoff and the retry count that produced it.
func RecordBackoff(delay time.Duration, retryCount int) {
	BackoffDelay.Observe(delay.Seconds())
	RetryCount.Set(float64(retryCount))
}

// ResetRetryCount zeroes the retry gauge.
func ResetRetryCount() {
	RetryCount.Set(0)
}

// SetFatalState marks kind as the active fatal state. An empty kind clears it.
func SetFatalState(kind string) {
	for _, k := range FatalKinds {
		v := 0.0
		if k == kind {
			v = 1
		}
		FatalErrorActive.WithLabelValues(k).Set(v)
	}
}

// RecordPreflight records the outcome of a recovery preflight.
func RecordPreflight(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	PreflightsTotal.WithLabelValues(result).Inc()
}

// SetBotStatus updates the sampled bot gauges.
func SetBotStatus(online bool, guilds int, offlineFor time.Duration) {
	if online {
		BotOnline.Set(1)
	} else {
		BotOnline.Set(0)
	}
	BotGuilds.Set(float64(guilds))
	BotOfflineSeconds.Set(offlineFor.Seconds())
}

// RecordReconnect records an online to offline transition.
func RecordReconnect() {
	BotReconnectsTotal.Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
