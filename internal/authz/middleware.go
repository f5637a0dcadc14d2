// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package authz

import (
	"net/http"

	"github.com/tomtom215/skyguide/internal/auth"
	"github.com/tomtom215/skyguide/internal/logging"
)

// Middleware enforces Casbin policy on routes.
type Middleware struct {
	enforcer *Enforcer
	onError  auth.ErrorWriter
}

// NewMiddleware creates the authorization middleware. onError renders
// denials; nil falls back to http.Error.
func NewMiddleware(enforcer *Enforcer, onError auth.ErrorWriter) *Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, status int, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{enforcer: enforcer, onError: onError}
}

// Authorize returns middleware requiring the caller's role to be allowed
// action on object. Requests without a subject are evaluated with the
// default role; the handler decides whether an identity is required.
func (m *Middleware) Authorize(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var role string
			if s := auth.GetSubject(r.Context()); s != nil {
				role = s.Role
			}

			allowed, err := m.enforcer.Enforce(role, object, action)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
				m.onError(w, r, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !allowed {
				logging.Ctx(r.Context()).Warn().
					Str("role", role).
					Str("object", object).
					Str("action", action).
					Msg("Authorization denied")
				m.onError(w, r, http.StatusForbidden, "Forbidden: insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
