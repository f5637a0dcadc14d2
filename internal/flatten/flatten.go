// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package flatten maps the engine's nested result entries onto the flat
// per-object records clients consume.
package flatten

import (
	"regexp"
	"strconv"

	"github.com/tomtom215/skyguide/internal/models"
)

var numberPattern = regexp.MustCompile(`[-+]?(?:\d+(?:\.\d*)?|\.\d+)`)

// ParseBoost returns the first signed decimal number in s, or 0 when there
// is none. "Boosted: 12.5%" yields 12.5 and "-.5" yields -0.5.
func ParseBoost(s string) float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// Flatten converts a whole engine result. A nil result flattens to empty
// lists; the returned slices are never nil.
func Flatten(r *models.EngineResult) *models.FlattenedResult {
	out := &models.FlattenedResult{
		Stars:   []models.FlatStar{},
		Planets: []models.FlatPlanet{},
		Moons:   []models.FlatMoon{},
	}
	if r == nil {
		return out
	}
	for _, s := range r.Stars {
		out.Stars = append(out.Stars, FlattenStar(s))
	}
	for _, p := range r.Planets {
		out.Planets = append(out.Planets, FlattenPlanet(p))
	}
	for _, m := range r.Moons {
		out.Moons = append(out.Moons, FlattenMoon(m))
	}
	return out
}

// FlattenStar converts one star entry.
func FlattenStar(s models.Scored[models.StarRecord]) models.FlatStar {
	return models.FlatStar{StarRecord: s.Object, FlatMetrics: metrics(s.Position, s.Score, s.Boost, s.Weather)}
}

// FlattenPlanet converts one planet entry.
func FlattenPlanet(p models.Scored[models.PlanetRecord]) models.FlatPlanet {
	return models.FlatPlanet{PlanetRecord: p.Object, FlatMetrics: metrics(p.Position, p.Score, p.Boost, p.Weather)}
}

// FlattenMoon converts one moon entry.
func FlattenMoon(m models.Scored[models.MoonRecord]) models.FlatMoon {
	return models.FlatMoon{MoonRecord: m.Object, FlatMetrics: metrics(m.Position, m.Score, m.Boost, m.Weather)}
}

func metrics(pos models.SkyPosition, score models.MatchScore, boost models.BoostInfo, weather models.WeatherInfo) models.FlatMetrics {
	return models.FlatMetrics{
		Altitude:                pos.Altitude,
		Azimuth:                 pos.Azimuth,
		IsVisible:               pos.IsVisible,
		MatchScore:              score.Score,
		MatchPercentage:         score.Percentage,
		BoostAmountPct:          ParseBoost(string(boost.Amount)),
		WeatherVisibilityChance: weather.VisibilityChance,
		WeatherExplanation:      weather.Explanation,
	}
}
