// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type retrySection struct {
	BaseDelay   time.Duration `koanf:"base_delay" validate:"gt=0"`
	MaxExponent int           `koanf:"max_exponent" validate:"gte=0,lte=30"`
}

type sample struct {
	Retry  retrySection `koanf:"retry"`
	Port   int          `koanf:"port" validate:"min=1,max=65535"`
	Format string       `koanf:"format" validate:"oneof=json console"`
	Name   string       `validate:"required"`
}

func validSample() sample {
	return sample{
		Retry:  retrySection{BaseDelay: 2 * time.Second, MaxExponent: 8},
		Port:   5000,
		Format: "json",
		Name:   "heartbeat",
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	s := validSample()
	if err := ValidateStruct(&s); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*sample)
		wantField string
		wantMsg   string
	}{
		{"zero base delay", func(s *sample) { s.Retry.BaseDelay = 0 }, "retry.base_delay", "retry.base_delay must be greater than 0"},
		{"exponent too large", func(s *sample) { s.Retry.MaxExponent = 31 }, "retry.max_exponent", "less than or equal to 30"},
		{"port out of range", func(s *sample) { s.Port = 70000 }, "port", "port must be at most 65535"},
		{"unknown format", func(s *sample) { s.Format = "xml" }, "format", "format must be one of: json console"},
		{"missing name", func(s *sample) { s.Name = "" }, "Name", "Name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validSample()
			tt.mutate(&s)

			err := ValidateStruct(&s)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verrs *Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected *Errors, got %T", err)
			}
			if len(verrs.Fields()) != 1 {
				t.Fatalf("expected 1 field error, got %d: %v", len(verrs.Fields()), err)
			}
			fe := verrs.Fields()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	t.Parallel()

	s := validSample()
	s.Port = 0
	s.Format = ""

	err := ValidateStruct(&s)
	var verrs *Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected *Errors, got %v", err)
	}
	if len(verrs.Fields()) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(verrs.Fields()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined messages, got %q", err.Error())
	}
}
