// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package models

// Explorer is a registered user.
type Explorer struct {
	ID   int64
	Name string
}

// LikedObject is one entry of an explorer's favorites, resolved to the
// object's display name. Name is empty when the referenced row no longer exists.
type LikedObject struct {
	ObjectType string
	Name       string
}

// Observation carries the optional observer position and time supplied by
// the caller. Nil coordinates and an empty time select configured defaults.
type Observation struct {
	Latitude        *float64
	Longitude       *float64
	ObservationTime string
}

// UserContext is the explorer profile handed to the engine.
type UserContext struct {
	ID              int64    `json:"ID"`
	Name            string   `json:"Name"`
	Latitude        float64  `json:"Latitude"`
	Longitude       float64  `json:"Longitude"`
	ObservationTime string   `json:"ObservationTime"`
	LikedStars      []string `json:"LikedStars"`
	LikedPlanets    []string `json:"LikedPlanets"`
	LikedMoons      []string `json:"LikedMoons"`
}
