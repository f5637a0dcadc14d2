// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestBoostTextUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  BoostText
	}{
		{"string", `{"Amount":"Boosted: 12%"}`, "Boosted: 12%"},
		{"number", `{"Amount":7.5}`, "7.5"},
		{"negative number", `{"Amount":-3}`, "-3"},
		{"null", `{"Amount":null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var info BoostInfo
			if err := json.Unmarshal([]byte(tt.input), &info); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if info.Amount != tt.want {
				t.Errorf("Amount = %q, want %q", info.Amount, tt.want)
			}
		})
	}
}

func TestLayerFlagsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flags LayerFlags
		want  []string
	}{
		{LayerFlags{}, []string{}},
		{LayerFlags{L2: true}, []string{"l2"}},
		{LayerFlags{L2: true, L4: true}, []string{"l2", "l4"}},
		{LayerFlags{L2: true, L3: true, L4: true}, []string{"l2", "l3", "l4"}},
	}

	for _, tt := range tests {
		if got := tt.flags.Active(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%+v.Active() = %v, want %v", tt.flags, got, tt.want)
		}
	}
}

func TestFlatStarEncodesInline(t *testing.T) {
	t.Parallel()

	star := FlatStar{
		StarRecord:  StarRecord{ID: 7, Name: "Vega", RA: 279.23},
		FlatMetrics: FlatMetrics{Altitude: 45, IsVisible: true, BoostAmountPct: 12},
	}
	data, err := json.Marshal(star)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{`"Id":7`, `"Name":"Vega"`, `"RA_ICRS":279.23`, `"Is_Visible":true`, `"Boost_Amount_Pct":12`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestEnginePayloadNullLayers(t *testing.T) {
	t.Parallel()

	payload := EnginePayload{User: &UserContext{ID: 1}, Pool: &CelestialPool{}}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"Layer4Data":null`) {
		t.Errorf("expected null Layer4Data in %s", out)
	}
	if !strings.Contains(out, `"Config":{"l2":false,"l3":false,"l4":false}`) {
		t.Errorf("expected layer flags in %s", out)
	}
}
