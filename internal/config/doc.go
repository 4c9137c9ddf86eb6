// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

/*
Package config provides configuration loading for Heartbeat.

Configuration is layered with Koanf v2: built-in defaults, an optional YAML
file, then environment variables. An optional .env file is loaded into the
environment first (godotenv) so local development matches hosted deployments.

# Environment Variables

Bot:
  - DISCORD_TOKEN: bot token (a missing token is reported through /health, not at start-up)
  - DISCORD_TOKEN_FILE: file holding the token, re-read on each credential check
  - DISCORD_INTENTS: gateway intents bitmask (default: 1, guilds)
  - DISCORD_PREFLIGHT_TIMEOUT: recovery handshake timeout (default: 30s)

Supervisor:
  - RETRY_BASE_DELAY, RETRY_MAX_DELAY, RETRY_MAX_EXPONENT, RETRY_JITTER
  - RECOVERY_THRESHOLD: fatal duration before preflight (default: 600s)
  - PREFLIGHT_INTERVAL: spacing between failed preflights (default: 30s)
  - STARTUP_DELAY: wait before the HTTP server starts (default: 3s)

HTTP Server:
  - PORT (or HTTP_PORT): listen port (default: 5000)
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - GRACE_PERIOD: offline duration tolerated by /health (default: 120s)

Security:
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Files:
  - CONFIG_PATH: YAML config file (default search: ./config.yaml, /etc/heartbeat/config.yaml)
  - DOTENV_PATH: .env file (default: ./.env)

# Example config.yaml

	supervisor:
	  recovery_threshold: 10m
	  preflight_interval: 30s
	server:
	  port: 8080
	  grace_period: 2m
*/
package config
