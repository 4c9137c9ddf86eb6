// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package bot

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures that the supervisor treats as fatal.
// Anything not carrying a kind is transient.
type ErrorKind int

const (
	// KindUnknown is a fatal failure the client could not classify further.
	KindUnknown ErrorKind = iota
	// KindImportFailure means the client capability could not be acquired.
	KindImportFailure
	// KindMissingToken means no credential is configured.
	KindMissingToken
	// KindInvalidToken means the backend rejected the credential.
	KindInvalidToken
	// KindConfiguration means the backend rejected the client configuration
	// (intents, sharding, API version).
	KindConfiguration
)

// String returns the human label used in fatal error messages.
func (k ErrorKind) String() string {
	switch k {
	case KindImportFailure:
		return "Import error"
	case KindMissingToken:
		return "Missing token"
	case KindInvalidToken:
		return "Invalid token"
	case KindConfiguration:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}

// Label returns a snake_case identifier for metrics and JSON.
func (k ErrorKind) Label() string {
	switch k {
	case KindImportFailure:
		return "import_failure"
	case KindMissingToken:
		return "missing_token"
	case KindInvalidToken:
		return "invalid_token"
	case KindConfiguration:
		return "configuration_error"
	default:
		return "unknown"
	}
}

// ErrMissingToken is wrapped by the token source when no credential is found.
var ErrMissingToken = errors.New("no bot token configured")

// Error is a fatal client failure tagged with its kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the fatal kind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return KindUnknown, false
}

// IsFatal reports whether err is a tagged fatal failure.
func IsFatal(err error) bool {
	_, ok := KindOf(err)
	return ok
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// ImportFailure wraps err as a capability acquisition failure.
func ImportFailure(err error) error { return newError(KindImportFailure, err) }

// MissingToken returns a missing-credential failure. err may be nil.
func MissingToken(err error) error {
	if err == nil {
		err = ErrMissingToken
	} else if !errors.Is(err, ErrMissingToken) {
		err = fmt.Errorf("%w: %w", ErrMissingToken, err)
	}
	return newError(KindMissingToken, err)
}

// InvalidToken wraps err as an authentication failure.
func InvalidToken(err error) error { return newError(KindInvalidToken, err) }

// ConfigurationError wraps err as a configuration failure.
func ConfigurationError(err error) error { return newError(KindConfiguration, err) }
