// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package bot

import "context"

// Client is one live connection attempt to the chat backend.
//
// Run blocks until the connection ends. It returns nil when ctx is canceled,
// a *Error for fatal failures, and any other error for transient ones.
// The accessors are safe to call concurrently with Run.
type Client interface {
	Run(ctx context.Context, token string) error

	// IsReady reports whether the client currently has a ready session.
	IsReady() bool

	// DisplayName is the bot user's name, or "" before the first READY.
	DisplayName() string

	// GuildCount is the number of guilds in the session cache.
	GuildCount() int

	// Connected reports whether this client reached READY at least once.
	Connected() bool
}

// Factory builds clients and validates credentials.
type Factory interface {
	// New constructs a fresh, unconnected client. onReady, when non-nil, is
	// called from the client's event goroutine each time a session reaches
	// READY.
	New(onReady func()) (Client, error)

	// Preflight performs a login-then-close handshake against the backend
	// without keeping a session open.
	Preflight(ctx context.Context, token string) error
}

// Provider acquires the client capability. A failure here is reported as
// KindImportFailure and retried only through recovery.
type Provider interface {
	Acquire() (Factory, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (Factory, error)

// Acquire calls f.
func (f ProviderFunc) Acquire() (Factory, error) { return f() }
