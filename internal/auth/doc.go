// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package auth authenticates API callers with HS256 JWT bearer tokens.
//
// Tokens carry the explorer id, username and role. The middleware validates
// the token from the Authorization header (or the "token" cookie) and stores
// a *Subject in the request context; handlers read it with GetSubject.
//
// In "none" mode requests pass through without a subject. Endpoints that
// need a caller identity then reject the request themselves.
package auth
