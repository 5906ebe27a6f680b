// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recerr

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		sentinel error
		others   []error
		contains []string
	}{
		{
			name:     "data error",
			err:      NewDataError("lookup", "unknown title", nil),
			sentinel: ErrData,
			others:   []error{ErrLoad, ErrConfig, ErrIO},
			contains: []string{"data error", "lookup", "unknown title"},
		},
		{
			name:     "load error",
			err:      NewLoadError("/tmp/m.gob.gz", "checksum mismatch", cause),
			sentinel: ErrLoad,
			others:   []error{ErrData, ErrConfig, ErrIO},
			contains: []string{"load error", "/tmp/m.gob.gz", "checksum mismatch", "boom"},
		},
		{
			name:     "config error",
			err:      NewConfigError("fit", "empty corpus", nil),
			sentinel: ErrConfig,
			others:   []error{ErrData, ErrLoad, ErrIO},
			contains: []string{"config error", "fit", "empty corpus"},
		},
		{
			name:     "io error",
			err:      NewIOError("/ro/m.gob.gz", "create file", cause),
			sentinel: ErrIO,
			others:   []error{ErrData, ErrLoad, ErrConfig},
			contains: []string{"io error", "/ro/m.gob.gz", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			for _, other := range tt.others {
				if errors.Is(tt.err, other) {
					t.Errorf("errors.Is(%v, %v) = true, want false", tt.err, other)
				}
			}
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("Error() = %q, want substring %q", msg, s)
				}
			}
		})
	}
}

func TestWrappedKindsSurviveFmtWrap(t *testing.T) {
	err := fmt.Errorf("start server: %w", NewLoadError("m.gob.gz", "open", os.ErrNotExist))

	if !errors.Is(err, ErrLoad) {
		t.Error("wrapped LoadError should match ErrLoad")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("wrapped LoadError should expose its cause")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatal("errors.As should find *LoadError")
	}
	if le.Path != "m.gob.gz" {
		t.Errorf("Path = %q, want m.gob.gz", le.Path)
	}
}
