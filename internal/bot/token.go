// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package bot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// TokenSource yields the current bot credential.
type TokenSource interface {
	// Token returns the credential or a KindMissingToken *Error.
	Token() (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() (string, error)

// Token calls f.
func (f TokenFunc) Token() (string, error) { return f() }

// StaticToken returns a source that always yields token.
func StaticToken(token string) TokenSource {
	return TokenFunc(func() (string, error) {
		if token = strings.TrimSpace(token); token == "" {
			return "", MissingToken(nil)
		}
		return token, nil
	})
}

// FileTokenSource reads the token from File on every call, falling back to
// Fallback when the file is absent or empty. Secrets mounted after start-up
// are therefore seen by the next credential check.
type FileTokenSource struct {
	File     string
	Fallback string
}

// Token implements TokenSource.
func (s FileTokenSource) Token() (string, error) {
	if s.File != "" {
		data, err := os.ReadFile(s.File)
		switch {
		case err == nil:
			if tok := strings.TrimSpace(string(data)); tok != "" {
				return tok, nil
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return "", MissingToken(fmt.Errorf("read token file %s: %w", s.File, err))
		}
	}
	if tok := strings.TrimSpace(s.Fallback); tok != "" {
		return tok, nil
	}
	return "", MissingToken(nil)
}
