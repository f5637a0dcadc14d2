// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package models

// Object types as stored in Liked_Objects and Interactions.
const (
	ObjectStar   = "Star"
	ObjectPlanet = "Planet"
	ObjectMoon   = "Moon"
)

// StarRecord is one row of the star catalog.
type StarRecord struct {
	ID           int64   `json:"Id"`
	Name         string  `json:"Name"`
	Source       string  `json:"Source"`
	RA           float64 `json:"RA_ICRS"`
	Dec          float64 `json:"DE_ICRS"`
	GMag         float64 `json:"Gmag"`
	SpectralType string  `json:"SpectralType"`
}

// PlanetRecord is one row of the planet catalog, including the orbital
// elements the engine needs to position it.
type PlanetRecord struct {
	ID                     int64   `json:"Id"`
	Name                   string  `json:"Name"`
	Magnitude              float64 `json:"Magnitude"`
	Color                  string  `json:"Color"`
	DistanceFromSun        float64 `json:"DistanceFromSun"`
	DistanceFromEarth      float64 `json:"DistanceFromEarth"`
	Diameter               float64 `json:"Diameter"`
	Mass                   float64 `json:"Mass"`
	OrbitalPeriod          float64 `json:"OrbitalPeriod"`
	OrbitalInclination     float64 `json:"OrbitalInclination"`
	SemiMajorAxisAU        float64 `json:"SemiMajorAxisAU"`
	LongitudeAscendingNode float64 `json:"LongitudeAscendingNode"`
	ArgumentPeriapsis      float64 `json:"ArgumentPeriapsis"`
	MeanAnomaly            float64 `json:"MeanAnomaly"`
	MeanTemperature        float64 `json:"MeanTemperature"`
	NumberOfMoons          int     `json:"NumberOfMoons"`
	HasRings               bool    `json:"HasRings"`
	HasMagneticField       bool    `json:"HasMagneticField"`
	Type                   string  `json:"Type"`
}

// MoonRecord is one row of the moon catalog.
type MoonRecord struct {
	ID                 int64   `json:"Id"`
	Name               string  `json:"Name"`
	Parent             string  `json:"Parent"`
	Color              string  `json:"Color"`
	Diameter           float64 `json:"Diameter"`
	Mass               float64 `json:"Mass"`
	OrbitalPeriod      float64 `json:"OrbitalPeriod"`
	SemiMajorAxisKm    float64 `json:"SemiMajorAxisKm"`
	Inclination        float64 `json:"Inclination"`
	SurfaceTemperature float64 `json:"SurfaceTemperature"`
	Composition        string  `json:"Composition"`
	SurfaceFeatures    string  `json:"SurfaceFeatures"`
	DistanceFromEarth  float64 `json:"DistanceFromEarth"`
}

// CelestialPool is the candidate set for one orchestration run: a random
// sample of bright stars plus the full planet and moon catalogs.
type CelestialPool struct {
	Stars   []StarRecord   `json:"Stars"`
	Planets []PlanetRecord `json:"Planets"`
	Moons   []MoonRecord   `json:"Moons"`
}

// PoolCount summarizes a pool's size per object type.
type PoolCount struct {
	Stars   int `json:"stars"`
	Planets int `json:"planets"`
	Moons   int `json:"moons"`
}

// Count returns the number of records per object type.
func (p *CelestialPool) Count() PoolCount {
	return PoolCount{Stars: len(p.Stars), Planets: len(p.Planets), Moons: len(p.Moons)}
}
