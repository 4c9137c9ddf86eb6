// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package bot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKindLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  ErrorKind
		label string
		human string
	}{
		{KindImportFailure, "import_failure", "Import error"},
		{KindMissingToken, "missing_token", "Missing token"},
		{KindInvalidToken, "invalid_token", "Invalid token"},
		{KindConfiguration, "configuration_error", "Configuration error"},
		{KindUnknown, "unknown", "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			if tt.kind.Label() != tt.label {
				t.Errorf("Label() = %q, want %q", tt.kind.Label(), tt.label)
			}
			if tt.kind.String() != tt.human {
				t.Errorf("String() = %q, want %q", tt.kind.String(), tt.human)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("401 Unauthorized")

	tests := []struct {
		name      string
		err       error
		wantKind  ErrorKind
		wantFatal bool
	}{
		{"invalid token", InvalidToken(cause), KindInvalidToken, true},
		{"wrapped twice", fmt.Errorf("attempt 3: %w", ConfigurationError(cause)), KindConfiguration, true},
		{"import", ImportFailure(cause), KindImportFailure, true},
		{"explicit unknown", &Error{Kind: KindUnknown, Err: cause}, KindUnknown, true},
		{"plain transient", cause, KindUnknown, false},
		{"nil", nil, KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kind, ok := KindOf(tt.err)
			if ok != tt.wantFatal || kind != tt.wantKind {
				t.Errorf("KindOf() = (%v, %v), want (%v, %v)", kind, ok, tt.wantKind, tt.wantFatal)
			}
			if IsFatal(tt.err) != tt.wantFatal {
				t.Errorf("IsFatal() = %v, want %v", IsFatal(tt.err), tt.wantFatal)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := InvalidToken(errors.New("authentication failed"))
	if got := err.Error(); got != "Invalid token: authentication failed" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&Error{Kind: KindConfiguration}).Error(); got != "Configuration error" {
		t.Errorf("Error() without cause = %q", got)
	}
}

func TestMissingToken(t *testing.T) {
	t.Parallel()

	err := MissingToken(nil)
	if !errors.Is(err, ErrMissingToken) {
		t.Error("MissingToken(nil) should wrap ErrMissingToken")
	}
	if !strings.HasPrefix(err.Error(), "Missing token") {
		t.Errorf("Error() = %q", err.Error())
	}

	cause := errors.New("permission denied")
	err = MissingToken(cause)
	if !errors.Is(err, ErrMissingToken) || !errors.Is(err, cause) {
		t.Errorf("MissingToken(cause) should wrap both sentinel and cause: %v", err)
	}
}
