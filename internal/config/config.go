// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values matching the behaviour operators expect
//  2. .env file: loaded into the process environment by godotenv (optional)
//  3. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  4. Environment Variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Bot        BotConfig        `koanf:"bot"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Tree       TreeConfig       `koanf:"tree"`
}

// BotConfig configures the chat backend client.
//
// Token is read from DISCORD_TOKEN. TokenFile, when set, is read on every
// credential check, so a secret mounted after start-up is picked up by the
// next recovery preflight.
type BotConfig struct {
	Token            string        `koanf:"token"`
	TokenFile        string        `koanf:"token_file"`
	Intents          int           `koanf:"intents" validate:"gte=0"`
	PreflightTimeout time.Duration `koanf:"preflight_timeout" validate:"gt=0"`
}

// SupervisorConfig tunes the restart loop.
type SupervisorConfig struct {
	// BaseDelay is the base of the exponential backoff. The first retry waits
	// roughly BaseDelay*2.
	BaseDelay time.Duration `koanf:"base_delay" validate:"gt=0"`

	// MaxDelay caps a single backoff delay before jitter.
	MaxDelay time.Duration `koanf:"max_delay" validate:"gt=0"`

	// MaxExponent caps the exponent applied to BaseDelay.
	MaxExponent int `koanf:"max_exponent" validate:"gte=0,lte=30"`

	// Jitter is the +/- randomization factor applied to every delay.
	Jitter float64 `koanf:"jitter" validate:"gte=0,lt=1"`

	// RecoveryThreshold is how long a fatal error must persist before a
	// recovery preflight is attempted.
	RecoveryThreshold time.Duration `koanf:"recovery_threshold" validate:"gt=0"`

	// PreflightInterval spaces consecutive failed preflights.
	PreflightInterval time.Duration `koanf:"preflight_interval" validate:"gt=0"`

	// PollInterval is the sleep granularity; cancellation is observed at this resolution.
	PollInterval time.Duration `koanf:"poll_interval" validate:"gt=0"`

	// StartupDelay is how long main waits for the first connection attempt
	// before starting the HTTP server.
	StartupDelay time.Duration `koanf:"startup_delay" validate:"gte=0"`

	// FatalLogInterval throttles the "waiting for recovery" log line.
	FatalLogInterval time.Duration `koanf:"fatal_log_interval" validate:"gt=0"`

	// SampleInterval is how often the status sampler refreshes derived status.
	SampleInterval time.Duration `koanf:"sample_interval" validate:"gt=0"`
}

// ServerConfig configures the HTTP status server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	GracePeriod     time.Duration `koanf:"grace_period" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config for file/env loading.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// TreeConfig holds suture supervisor tree parameters.
type TreeConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold" validate:"gt=0"`
	FailureDecay     float64       `koanf:"failure_decay" validate:"gt=0"`
	FailureBackoff   time.Duration `koanf:"failure_backoff" validate:"gt=0"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// String renders a redacted one-line summary suitable for the startup log.
func (c *Config) String() string {
	token := "unset"
	if c.Bot.Token != "" {
		token = "set"
	}
	return fmt.Sprintf("addr=%s token=%s token_file=%q recovery_threshold=%s grace_period=%s",
		c.Server.Addr(), token, c.Bot.TokenFile, c.Supervisor.RecoveryThreshold, c.Server.GracePeriod)
}
