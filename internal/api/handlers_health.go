// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"net/http"
	"time"
)

// HealthLive reports that the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, time.Time{}, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports the latest heartbeat. Without a heartbeat the database
// is pinged directly. Not ready answers 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.deps.Readiness != nil {
		snap := h.deps.Readiness.Snapshot()
		status := http.StatusOK
		if !snap.Ready {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, &Response{Success: snap.Ready, Data: snap, Meta: newMeta(r, time.Time{})})
		return
	}

	ready := h.deps.DB != nil && h.deps.DB.Ping(r.Context()) == nil
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, &Response{
		Success: ready,
		Data:    map[string]interface{}{"ready": ready, "database": ready},
		Meta:    newMeta(r, time.Time{}),
	})
}

// ServiceStatus is the body of the status endpoint.
type ServiceStatus struct {
	ServiceStatus  string `json:"serviceStatus"`
	DatabaseStatus string `json:"databaseStatus"`
	EngineCircuit  string `json:"engineCircuit,omitempty"`
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	st := ServiceStatus{ServiceStatus: "Online", DatabaseStatus: "Offline"}
	if h.deps.DB != nil && h.deps.DB.Ping(r.Context()) == nil {
		st.DatabaseStatus = "Online"
	}
	if h.deps.Engine != nil {
		st.EngineCircuit = h.deps.Engine.BreakerState()
	}
	respondData(w, r, start, http.StatusOK, &st)
}
