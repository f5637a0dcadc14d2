// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/models"
)

// Meta is attached to every response.
type Meta struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	RunID      string    `json:"run_id,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
}

// APIError is the error object of a failed response.
type APIError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Response is the generic envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    Meta        `json:"meta"`
}

// RunResponse is the envelope of a successful recommendation run.
type RunResponse struct {
	Success      bool                    `json:"success"`
	ActiveLayers []string                `json:"active_layers"`
	Results      *models.FlattenedResult `json:"results"`
	Meta         Meta                    `json:"meta"`
}

func newMeta(r *http.Request, start time.Time) Meta {
	m := Meta{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if !start.IsZero() {
		m.DurationMS = time.Since(start).Milliseconds()
	}
	return m
}

// respondJSON writes v with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondData(w http.ResponseWriter, r *http.Request, start time.Time, status int, data interface{}) {
	respondJSON(w, status, &Response{Success: true, Data: data, Meta: newMeta(r, start)})
}

// respondError writes a failure envelope. apiErr.RequestID is filled in.
func respondError(w http.ResponseWriter, r *http.Request, start time.Time, status int, apiErr *APIError) {
	meta := newMeta(r, start)
	apiErr.RequestID = meta.RequestID
	respondJSON(w, status, &Response{Success: false, Error: apiErr, Meta: meta})
}

// writeMiddlewareError adapts respondError to auth.ErrorWriter so that
// authentication, authorization and rate limit rejections share the envelope.
func writeMiddlewareError(w http.ResponseWriter, r *http.Request, status int, message string) {
	code := "ERROR"
	switch status {
	case http.StatusUnauthorized:
		code = CodeUnauthorized
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusTooManyRequests:
		code = CodeRateLimited
	case http.StatusInternalServerError:
		code = CodeInternal
	}
	respondError(w, r, time.Time{}, status, &APIError{Code: code, Message: message})
}

// sanitizeLogValue escapes control characters to prevent log injection.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
