// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package config

import (
	"fmt"

	"github.com/tomtom215/heartbeat/internal/logging"
	"github.com/tomtom215/heartbeat/internal/validation"
)

// Validate checks struct tag constraints and then cross-field rules.
//
// A missing bot token is deliberately not a validation error: the supervisor
// reports it as a recoverable fatal state through /health instead of refusing
// to start, so the platform keeps the process (and its health endpoint) alive.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.validateSupervisor(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSupervisor() error {
	s := c.Supervisor
	if s.MaxDelay < s.BaseDelay {
		return fmt.Errorf("supervisor.max_delay (%s) must not be less than supervisor.base_delay (%s)", s.MaxDelay, s.BaseDelay)
	}
	if s.PollInterval > s.RecoveryThreshold {
		return fmt.Errorf("supervisor.poll_interval (%s) must not exceed supervisor.recovery_threshold (%s)", s.PollInterval, s.RecoveryThreshold)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	return nil
}
