// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package compute

import (
	"errors"
	"testing"
)

func TestOutputResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stdout  string
		want    string
		wantErr error
	}{
		{"single marker", "log\n---JSON_START---\n{\"a\":1}\n", `{"a":1}`, nil},
		{"last marker wins", "---JSON_START---{\"a\":1}\n---JSON_START---\n{\"a\":2}", `{"a":2}`, nil},
		{"no marker", "{\"a\":1}", "", ErrFraming},
		{"nothing after marker", "log\n---JSON_START---\n  \n", "", ErrFraming},
		{"empty output", "", "", ErrFraming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := &Output{Stdout: []byte(tt.stdout)}
			got, err := out.Result(testMarker)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if string(got) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOutputRowsProcessed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stdout string
		want   int
	}{
		{"TOTAL_ROWS_PROCESSED: 412\n", 412},
		{"TOTAL_ROWS_PROCESSED: 10\nretry\nTOTAL_ROWS_PROCESSED: 25\n", 25},
		{"Loaded data\n", 0},
		{"", 0},
	}

	for _, tt := range tests {
		out := &Output{Stdout: []byte(tt.stdout)}
		if got := out.RowsProcessed(); got != tt.want {
			t.Errorf("RowsProcessed(%q) = %d, want %d", tt.stdout, got, tt.want)
		}
	}
}
