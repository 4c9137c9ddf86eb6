// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

/*
Command server runs Heartbeat: a supervisor that keeps a chat bot connected
and an HTTP status server that reports whether it is.

Startup sequence:

 1. Configuration: .env (godotenv), defaults, optional config.yaml, environment (koanf)
 2. Logging: zerolog, bridged to slog for the supervisor tree
 3. Supervisor tree (suture):
    bot-layer runs the bot supervisor loop,
    reporter-layer runs the status sampler
 4. Startup delay (STARTUP_DELAY, default 3s)
 5. HTTP server on the main goroutine (HTTP_HOST:PORT, default 0.0.0.0:5000)

The process exits with status 1 if the listener cannot bind. Otherwise it
runs until SIGINT or SIGTERM, which cancels the supervisor and shuts the
HTTP server down within HTTP_SHUTDOWN_TIMEOUT.

A missing or rejected bot token never stops the process. The supervisor
suspends connection attempts, /health answers 503, and a recovery preflight
is tried once the condition is older than RECOVERY_THRESHOLD (default 600s).

Common environment variables:

	DISCORD_TOKEN        bot token
	DISCORD_TOKEN_FILE   file holding the token, re-read on every check
	PORT                 HTTP port (default 5000)
	GRACE_PERIOD         offline time tolerated by /health (default 120s)
	RECOVERY_THRESHOLD   fatal age before recovery is attempted (default 600s)
	LOG_LEVEL            debug, info, warn, error (default info)
	LOG_FORMAT           json or console (default json)
*/
package main
