// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

// Package bot is the boundary between the supervisor and the chat backend.
//
// It defines the Client, Factory and Provider abstractions, the credential
// TokenSource, and the closed set of fatal error kinds (Error, ErrorKind).
// Everything backend specific lives in the discordgo adapter; the supervisor
// only sees the interfaces and classifies failures with errors.As.
//
// Fatal kinds:
//
//	KindImportFailure  capability could not be acquired
//	KindMissingToken   no credential configured
//	KindInvalidToken   backend rejected the credential (REST 401, gateway 4004)
//	KindConfiguration  backend rejected the configuration (gateway 4010-4014)
//	KindUnknown        fatal but unclassified
//
// Any error without a kind is transient and retried with backoff.
package bot
