// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/skyguide/internal/auth"
	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/models"
	"github.com/tomtom215/skyguide/internal/recommend"
)

// EngineRun handles POST /api/v1/engine/run.
func (h *Handler) EngineRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RunRequest
	if apiErr := decodeBody(r, w, &req); apiErr != nil {
		respondError(w, r, start, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.deps.Engine.Run(r.Context(), recommend.Request{
		Caller:      caller(r),
		Observation: req.Observation(),
		Layers:      req.Layers(),
	})
	if err != nil {
		h.fail(w, r, start, "engine.run", err)
		return
	}

	meta := newMeta(r, start)
	meta.RunID = resp.RunID
	respondJSON(w, http.StatusOK, &RunResponse{
		Success:      true,
		ActiveLayers: resp.ActiveLayers,
		Results:      resp.Results,
		Meta:         meta,
	})
}

// PoolProbe is the body of the pool probe.
type PoolProbe struct {
	Counts models.PoolCount      `json:"counts"`
	Pool   *models.CelestialPool `json:"pool"`
}

// EnginePool handles GET /api/v1/engine/pool.
func (h *Handler) EnginePool(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	pool, err := h.deps.Pool.Pool(r.Context())
	if err != nil {
		h.fail(w, r, start, "engine.pool", err)
		return
	}
	respondData(w, r, start, http.StatusOK, &PoolProbe{Counts: pool.Count(), Pool: pool})
}

// EngineUser handles POST /api/v1/engine/user. The explorer is the caller.
func (h *Handler) EngineUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ObservationRequest
	if apiErr := decodeBody(r, w, &req); apiErr != nil {
		respondError(w, r, start, http.StatusBadRequest, apiErr)
		return
	}

	c := caller(r)
	if c.UserID <= 0 {
		h.fail(w, r, start, "engine.user", recommend.ErrUnauthorized)
		return
	}

	uc, err := h.deps.Users.Context(r.Context(), c.UserID, req.Observation())
	if err != nil {
		h.fail(w, r, start, "engine.user", err)
		return
	}
	respondData(w, r, start, http.StatusOK, uc)
}

// EngineLayer handles GET /api/v1/engine/{layer}. The caller, when known,
// selects the per-explorer row of layers that have one.
func (h *Handler) EngineLayer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "layer")

	layer := h.deps.Layers.ByName(name)
	if layer == nil {
		respondError(w, r, start, http.StatusNotFound, &APIError{Code: CodeNotFound, Message: "Unknown layer " + name + "."})
		return
	}

	var target layers.Target
	if s := auth.GetSubject(r.Context()); s != nil {
		target = layers.ForUser(s.UserID)
	}

	res, err := layer.Invoke(r.Context(), target)
	if err != nil {
		h.fail(w, r, start, "engine."+name, err)
		return
	}
	if res.ArtifactMissing {
		respondError(w, r, start, http.StatusNotFound, &APIError{
			Code:    CodeNotFound,
			Message: "No fallback data available for layer " + name + ".",
		})
		return
	}
	respondData(w, r, start, http.StatusOK, res)
}
