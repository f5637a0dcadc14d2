// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package validation

import (
	"strings"
	"testing"
)

type observationRequest struct {
	UserID          int64    `json:"userId" validate:"gt=0"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	ObservationTime string   `json:"observationTime" validate:"omitempty,obstime"`
	Mode            string   `json:"mode,omitempty" validate:"omitempty,oneof=framed artifact"`
}

func ptr(f float64) *float64 { return &f }

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     observationRequest
		wantField string
		wantTag   string
	}{
		{"minimal", observationRequest{UserID: 1}, "", ""},
		{"full", observationRequest{
			UserID:          1,
			Latitude:        ptr(51.016),
			Longitude:       ptr(4.242),
			ObservationTime: "2025-01-01T22:00:00.000Z",
			Mode:            "framed",
		}, "", ""},
		{"offset time", observationRequest{UserID: 1, ObservationTime: "2025-01-01T22:00:00+02:00"}, "", ""},
		{"missing user", observationRequest{}, "userId", "gt"},
		{"latitude", observationRequest{UserID: 1, Latitude: ptr(90.5)}, "latitude", "latitude"},
		{"longitude", observationRequest{UserID: 1, Longitude: ptr(-181)}, "longitude", "longitude"},
		{"time", observationRequest{UserID: 1, ObservationTime: "tonight"}, "observationTime", "obstime"},
		{"mode", observationRequest{UserID: 1, Mode: "stdout"}, "mode", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("Expected no error, got %v", verr)
				}
				return
			}
			if len(verr) != 1 {
				t.Fatalf("Expected one error, got %v", verr)
			}
			if fe := verr[0]; fe.Field != tt.wantField || fe.Tag != tt.wantTag {
				t.Errorf("Expected %s/%s, got %s/%s", tt.wantField, tt.wantTag, fe.Field, fe.Tag)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&observationRequest{UserID: 1, Latitude: ptr(100)}).ToAPIError()
	if single.Code != ErrorCode {
		t.Errorf("Expected code %s, got %s", ErrorCode, single.Code)
	}
	if single.Details["field"] != "latitude" {
		t.Errorf("Expected field latitude, got %v", single.Details["field"])
	}
	if !strings.Contains(single.Message, "-90 to 90") {
		t.Errorf("Unexpected message %q", single.Message)
	}

	multi := ValidateStruct(&observationRequest{Latitude: ptr(100), ObservationTime: "x"}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Fatalf("Expected 3 field details, got %v", multi.Details["fields"])
	}
	if strings.Count(multi.Message, ";") != 2 {
		t.Errorf("Expected joined message, got %q", multi.Message)
	}
}
