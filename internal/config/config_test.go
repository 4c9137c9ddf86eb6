// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package config

import (
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns the documented defaults.
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Supervisor.BaseDelay", cfg.Supervisor.BaseDelay, 2 * time.Second},
		{"Supervisor.MaxDelay", cfg.Supervisor.MaxDelay, 300 * time.Second},
		{"Supervisor.MaxExponent", cfg.Supervisor.MaxExponent, 8},
		{"Supervisor.Jitter", cfg.Supervisor.Jitter, 0.2},
		{"Supervisor.RecoveryThreshold", cfg.Supervisor.RecoveryThreshold, 600 * time.Second},
		{"Supervisor.PreflightInterval", cfg.Supervisor.PreflightInterval, 30 * time.Second},
		{"Supervisor.PollInterval", cfg.Supervisor.PollInterval, time.Second},
		{"Supervisor.StartupDelay", cfg.Supervisor.StartupDelay, 3 * time.Second},
		{"Server.Port", cfg.Server.Port, 5000},
		{"Server.Host", cfg.Server.Host, "0.0.0.0"},
		{"Server.GracePeriod", cfg.Server.GracePeriod, 120 * time.Second},
		{"Bot.PreflightTimeout", cfg.Bot.PreflightTimeout, 30 * time.Second},
		{"Logging.Format", cfg.Logging.Format, "json"},
		{"Tree.FailureBackoff", cfg.Tree.FailureBackoff, 15 * time.Second},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"missing token is allowed", func(c *Config) { c.Bot.Token = "" }, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 65536 }, "server.port"},
		{"zero base delay", func(c *Config) { c.Supervisor.BaseDelay = 0 }, "supervisor.base_delay"},
		{"jitter of one", func(c *Config) { c.Supervisor.Jitter = 1 }, "supervisor.jitter"},
		{"max below base", func(c *Config) { c.Supervisor.MaxDelay = time.Second }, "must not be less than"},
		{"poll above threshold", func(c *Config) { c.Supervisor.PollInterval = time.Hour }, "must not exceed"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"negative grace", func(c *Config) { c.Server.GracePeriod = -time.Second }, "server.grace_period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "0.0.0.0", Port: 5000}
	if got := s.Addr(); got != "0.0.0.0:5000" {
		t.Errorf("Addr() = %q", got)
	}
	s = ServerConfig{Host: "::1", Port: 8080}
	if got := s.Addr(); got != "[::1]:8080" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestConfigStringRedactsToken(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Bot.Token = "super-secret-token-value"

	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Errorf("String() leaked token: %s", s)
	}
	if !strings.Contains(s, "token=set") {
		t.Errorf("String() = %s, want token=set", s)
	}
}
