// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/skyguide/internal/auth"
	"github.com/tomtom215/skyguide/internal/authz"
	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/models"
	"github.com/tomtom215/skyguide/internal/recommend"
	"github.com/tomtom215/skyguide/internal/supervisor/services"
)

// EngineRunner executes recommendation runs.
type EngineRunner interface {
	Run(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	BreakerState() string
}

// PoolProvider reads the celestial pool.
type PoolProvider interface {
	Pool(ctx context.Context) (*models.CelestialPool, error)
}

// UserProvider builds an explorer context.
type UserProvider interface {
	Context(ctx context.Context, userID int64, obs models.Observation) (*models.UserContext, error)
}

// LayerSet looks up signal layers by name.
type LayerSet interface {
	ByName(name string) layers.Layer
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Readiness exposes the latest heartbeat.
type Readiness interface {
	Snapshot() services.HeartbeatSnapshot
}

// Authorizer answers policy questions outside route middleware.
type Authorizer interface {
	Allowed(role, object, action string) bool
}

// HandlerDeps are the handler's collaborators. Readiness may be nil when
// the heartbeat is disabled.
type HandlerDeps struct {
	Engine    EngineRunner
	Pool      PoolProvider
	Users     UserProvider
	Layers    LayerSet
	DB        Pinger
	Readiness Readiness
	Authz     Authorizer
}

// Handler serves the API endpoints.
type Handler struct {
	deps      HandlerDeps
	startTime time.Time
}

// NewHandler creates the handler.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{deps: deps, startTime: time.Now()}
}

// caller converts the authenticated subject. Without one the zero Caller is
// returned and the engine rejects the run.
func caller(r *http.Request) recommend.Caller {
	s := auth.GetSubject(r.Context())
	if s == nil {
		return recommend.Caller{}
	}
	return recommend.Caller{UserID: s.UserID, Username: s.Username, Role: s.Role}
}

// diagnostics reports whether the caller may see error internals.
func (h *Handler) diagnostics(r *http.Request) bool {
	s := auth.GetSubject(r.Context())
	return s != nil && h.deps.Authz != nil && h.deps.Authz.Allowed(s.Role, authz.ObjectDiagnostics, authz.ActionRead)
}

// fail logs err and writes the mapped error response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, start time.Time, op string, err error) {
	status, apiErr := errorFor(err, h.diagnostics(r))
	log := logging.Ctx(r.Context())
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Str("op", op).Str("code", apiErr.Code).Int("status", status).
		Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	respondError(w, r, start, status, apiErr)
}
