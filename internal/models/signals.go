// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package models

import "time"

// Interaction types recorded in the Interactions table.
const (
	InteractionLike = "Like"
	InteractionRate = "Rate"
	InteractionView = "View"
)

// InteractionRow is the layer 2 (trending) input: one raw interaction.
type InteractionRow struct {
	InteractionID int64     `json:"Interaction_ID"`
	UserID        int64     `json:"User_ID"`
	ObjectType    string    `json:"Object_Type"`
	ObjectID      int64     `json:"Object_ID"`
	Type          string    `json:"Interaction_Type"`
	Rating        *float64  `json:"Interaction_Rating"`
	Timestamp     time.Time `json:"Timestamp"`
}

// SignalRow is the layer 3/4 input: an interaction projected onto the
// category of the object it touched (spectral type, planet type or parent
// planet) with a numeric strength.
type SignalRow struct {
	InteractionID int64     `json:"Interaction_ID"`
	UserID        int64     `json:"User_ID"`
	CategoryType  string    `json:"Category_Type"`
	CategoryValue string    `json:"Category_Value"`
	Strength      float64   `json:"Strength"`
	Timestamp     time.Time `json:"Timestamp"`
}
