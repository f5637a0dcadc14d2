// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance is shared by all handlers. It reports fields by
their JSON names and registers the "obstime" tag for observation timestamps
(RFC 3339, fractional seconds optional).

Example usage:

	type RunRequest struct {
	    Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	    ObservationTime string   `json:"observationTime" validate:"omitempty,obstime"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // render 400 with apiErr.Code, apiErr.Message, apiErr.Details
	}
*/
package validation
