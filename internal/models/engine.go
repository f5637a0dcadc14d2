// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// LayerFlags selects the optional signal layers for a run.
type LayerFlags struct {
	L2 bool `json:"l2"`
	L3 bool `json:"l3"`
	L4 bool `json:"l4"`
}

// Active returns the names of the enabled layers in execution order.
func (f LayerFlags) Active() []string {
	active := make([]string, 0, 3)
	if f.L2 {
		active = append(active, "l2")
	}
	if f.L3 {
		active = append(active, "l3")
	}
	if f.L4 {
		active = append(active, "l4")
	}
	return active
}

// LayerRow is one record produced by a signal layer. Values are kept as
// strings because the fallback artifacts are CSV files.
type LayerRow map[string]string

// EnginePayload is written to the engine's stdin. User and Pool are always
// set; layer fields are null when the layer did not run.
type EnginePayload struct {
	User       *UserContext   `json:"User"`
	Pool       *CelestialPool `json:"Pool"`
	Config     LayerFlags     `json:"Config"`
	Layer2Data []LayerRow     `json:"Layer2Data"`
	Layer3Data LayerRow       `json:"Layer3Data"`
	Layer4Data []LayerRow     `json:"Layer4Data"`
}

// SkyPosition is where an object sits for the observer.
type SkyPosition struct {
	Altitude  float64 `json:"Altitude"`
	Azimuth   float64 `json:"Azimuth"`
	IsVisible bool    `json:"IsVisible"`
}

// MatchScore is the engine's preference score for an object.
type MatchScore struct {
	Score      float64 `json:"Score"`
	Percentage float64 `json:"Percentage"`
}

// BoostInfo describes the layer boost applied to an object. Amount is a
// human-readable description such as "Boosted: 12%".
type BoostInfo struct {
	Amount BoostText `json:"Amount"`
	Reason string    `json:"Reason"`
}

// WeatherInfo is the engine's visibility forecast for an object.
type WeatherInfo struct {
	VisibilityChance float64 `json:"VisibilityChance"`
	Explanation      string  `json:"Explanation"`
}

// Scored is one engine result entry: the catalog object plus everything the
// engine computed about it.
//
// On the wire only Object is nested; the computed fields sit beside it:
//
//	{"Object": {...}, "Altitude": 42.1, "Azimuth": 180.5, "Is_Visible": true,
//	 "Score": 0.87, "Percentage": 87, "Boost": "Boosted: 15%", "Boost_Reason": "...",
//	 "Weather_Visibility_Chance": 72, "Weather_Explanation": "..."}
//
// Entries that group them under Position, Score, Boost and Weather objects
// decode too. A grouped value wins over its sibling.
type Scored[T any] struct {
	Object   T           `json:"Object"`
	Position SkyPosition `json:"Position"`
	Score    MatchScore  `json:"Score"`
	Boost    BoostInfo   `json:"Boost"`
	Weather  WeatherInfo `json:"Weather"`
}

// scoredWire accepts both entry layouts. Score and Boost are either a
// scalar or a group, so they are decoded by hand.
type scoredWire[T any] struct {
	Object   T               `json:"Object"`
	Position *SkyPosition    `json:"Position"`
	Weather  *WeatherInfo    `json:"Weather"`
	Score    json.RawMessage `json:"Score"`
	Boost    json.RawMessage `json:"Boost"`

	Altitude         float64   `json:"Altitude"`
	Azimuth          float64   `json:"Azimuth"`
	IsVisible        bool      `json:"Is_Visible"`
	Percentage       float64   `json:"Percentage"`
	BoostAmount      BoostText `json:"Boost_Amount"`
	BoostReason      string    `json:"Boost_Reason"`
	VisibilityChance float64   `json:"Weather_Visibility_Chance"`
	Explanation      string    `json:"Weather_Explanation"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scored[T]) UnmarshalJSON(data []byte) error {
	var w scoredWire[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Scored[T]{
		Object:   w.Object,
		Position: SkyPosition{Altitude: w.Altitude, Azimuth: w.Azimuth, IsVisible: w.IsVisible},
		Score:    MatchScore{Percentage: w.Percentage},
		Boost:    BoostInfo{Amount: w.BoostAmount, Reason: w.BoostReason},
		Weather:  WeatherInfo{VisibilityChance: w.VisibilityChance, Explanation: w.Explanation},
	}
	if w.Position != nil {
		out.Position = *w.Position
	}
	if w.Weather != nil {
		out.Weather = *w.Weather
	}
	if err := scalarOrGroup(w.Score, &out.Score.Score, &out.Score); err != nil {
		return fmt.Errorf("decode Score: %w", err)
	}
	if err := scalarOrGroup(w.Boost, &out.Boost.Amount, &out.Boost); err != nil {
		return fmt.Errorf("decode Boost: %w", err)
	}

	*s = out
	return nil
}

// scalarOrGroup decodes raw into group when it is a JSON object and into
// scalar otherwise. Absent and null values leave both untouched.
func scalarOrGroup(raw json.RawMessage, scalar, group any) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil
	case raw[0] == '{':
		return json.Unmarshal(raw, group)
	default:
		return json.Unmarshal(raw, scalar)
	}
}

// EngineResult is the JSON document the engine prints after the marker.
type EngineResult struct {
	Stars   []Scored[StarRecord]   `json:"Stars"`
	Planets []Scored[PlanetRecord] `json:"Planets"`
	Moons   []Scored[MoonRecord]   `json:"Moons"`
}

// BoostText is free-form boost text. It decodes from a JSON string, a bare
// number (kept as its literal text) or null (empty).
type BoostText string

// UnmarshalJSON implements json.Unmarshaler.
func (b *BoostText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*b = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BoostText(s)
	default:
		*b = BoostText(data)
	}
	return nil
}

// FlatMetrics are the per-object fields of the client wire contract.
type FlatMetrics struct {
	Altitude                float64 `json:"Altitude"`
	Azimuth                 float64 `json:"Azimuth"`
	IsVisible               bool    `json:"Is_Visible"`
	MatchScore              float64 `json:"Match_Score"`
	MatchPercentage         float64 `json:"Match_Percentage"`
	BoostAmountPct          float64 `json:"Boost_Amount_Pct"`
	WeatherVisibilityChance float64 `json:"Weather_Visibility_Chance"`
	WeatherExplanation      string  `json:"Weather_Explanation"`
}

// FlatStar is a star in the client wire contract.
type FlatStar struct {
	StarRecord
	FlatMetrics
}

// FlatPlanet is a planet in the client wire contract.
type FlatPlanet struct {
	PlanetRecord
	FlatMetrics
}

// FlatMoon is a moon in the client wire contract.
type FlatMoon struct {
	MoonRecord
	FlatMetrics
}

// FlattenedResult is the recommendation list returned to clients. The
// slices are never nil so that they encode as [].
type FlattenedResult struct {
	Stars   []FlatStar   `json:"Stars"`
	Planets []FlatPlanet `json:"Planets"`
	Moons   []FlatMoon   `json:"Moons"`
}
