// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package bot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticToken(t *testing.T) {
	t.Parallel()

	tok, err := StaticToken("  abc  ").Token()
	if err != nil || tok != "abc" {
		t.Errorf("Token() = (%q, %v), want (abc, nil)", tok, err)
	}

	_, err = StaticToken("   ").Token()
	if kind, ok := KindOf(err); !ok || kind != KindMissingToken {
		t.Errorf("expected missing token error, got %v", err)
	}
}

func TestFileTokenSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	src := FileTokenSource{File: path, Fallback: "env-token"}

	// File absent: fallback wins.
	if tok, err := src.Token(); err != nil || tok != "env-token" {
		t.Fatalf("Token() = (%q, %v), want env-token", tok, err)
	}

	// File mounted later: re-read on the next call.
	if err := os.WriteFile(path, []byte("file-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if tok, err := src.Token(); err != nil || tok != "file-token" {
		t.Fatalf("Token() = (%q, %v), want file-token", tok, err)
	}

	// Empty file falls back.
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if tok, _ := src.Token(); tok != "env-token" {
		t.Errorf("Token() = %q, want env-token for empty file", tok)
	}
}

func TestFileTokenSource_Missing(t *testing.T) {
	t.Parallel()

	src := FileTokenSource{File: filepath.Join(t.TempDir(), "absent")}
	_, err := src.Token()
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestFileTokenSource_Unreadable(t *testing.T) {
	t.Parallel()

	// A directory cannot be read as a file.
	src := FileTokenSource{File: t.TempDir(), Fallback: "env-token"}
	_, err := src.Token()
	if kind, ok := KindOf(err); !ok || kind != KindMissingToken {
		t.Fatalf("expected missing token error for unreadable file, got %v", err)
	}
}
