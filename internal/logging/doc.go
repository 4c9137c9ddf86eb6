// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

// Package logging provides centralized zerolog-based logging for Heartbeat.
//
// A single global logger is configured once from main and shared by the
// supervisor loop, the bot client adapter and the HTTP reporter. JSON output is
// the default because hosting platforms (Render, Fly, Railway) ingest stdout
// line by line.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("Supervisor started")
//	logging.Error().Err(err).Int("retry", n).Msg("Connection attempt failed")
//	logging.Ctx(r.Context()).Info().Msg("Health check")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Suture Integration
//
// SlogHandler adapts zerolog to slog.Handler so sutureslog can report
// supervisor tree events through the same logger.
//
// # Secrets
//
// Never log a bot token directly. Use SanitizeToken for display and
// RedactToken to scrub backend error messages.
package logging
