// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/skyguide/internal/models"
	"github.com/tomtom215/skyguide/internal/validation"
)

const maxBodyBytes = 64 << 10

// ObservationRequest is the optional observer position and time.
type ObservationRequest struct {
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	ObservationTime string   `json:"observationTime" validate:"omitempty,obstime"`
}

// Observation converts the request to the domain type.
func (o ObservationRequest) Observation() models.Observation {
	return models.Observation{
		Latitude:        o.Latitude,
		Longitude:       o.Longitude,
		ObservationTime: o.ObservationTime,
	}
}

// RunRequest is the body of POST /api/v1/engine/run.
type RunRequest struct {
	L2 bool `json:"l2"`
	L3 bool `json:"l3"`
	L4 bool `json:"l4"`
	ObservationRequest
}

// Layers returns the requested layer flags.
func (r RunRequest) Layers() models.LayerFlags {
	return models.LayerFlags{L2: r.L2, L3: r.L3, L4: r.L4}
}

// decodeBody decodes an optional JSON body into dst and validates it. An
// empty body leaves dst at its zero value.
func decodeBody(r *http.Request, w http.ResponseWriter, dst interface{}) *APIError {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &APIError{Code: CodeValidationFailed, Message: "Request body must be a JSON object."}
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		return &APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}
	}
	return nil
}
