// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/skyguide/internal/logging"
)

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, message string)

// Middleware authenticates requests.
type Middleware struct {
	mode        AuthMode
	manager     *JWTManager
	tokenCookie string
	onError     ErrorWriter
}

// NewMiddleware creates the authentication middleware. manager may be nil in
// AuthModeNone.
func NewMiddleware(mode AuthMode, manager *JWTManager, onError ErrorWriter) (*Middleware, error) {
	if mode == AuthModeJWT && manager == nil {
		return nil, errors.New("JWT manager required for jwt auth mode")
	}
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, status int, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{mode: mode, manager: manager, tokenCookie: "token", onError: onError}, nil
}

// Mode returns the configured mode.
func (m *Middleware) Mode() AuthMode {
	return m.mode
}

// Authenticate rejects requests without a valid token and stores the caller
// in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.mode == AuthModeNone {
			next.ServeHTTP(w, r)
			return
		}

		subject, err := m.authenticate(r)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Authentication failed")
			m.onError(w, r, http.StatusUnauthorized, authErrorMessage(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
	})
}

func (m *Middleware) authenticate(r *http.Request) (*Subject, error) {
	token := m.extractToken(r)
	if token == "" {
		return nil, ErrNoCredentials
	}
	claims, err := m.manager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredentials
		}
		return nil, ErrInvalidCredentials
	}
	return SubjectFromClaims(claims), nil
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return "Unauthorized: authentication required"
	case errors.Is(err, ErrExpiredCredentials):
		return "Unauthorized: credentials expired"
	default:
		return "Unauthorized: invalid credentials"
	}
}

// extractToken extracts the bearer token from Authorization header or cookie.
func (m *Middleware) extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}

	if cookie, err := r.Cookie(m.tokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
