// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

/*
Package middleware provides HTTP middleware shared by every route group.

Key Components:

  - RequestID: reuses an upstream X-Request-ID or generates a UUID, echoes it
    in the response and stores it (plus a fresh correlation id) in the
    logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern so path parameters do not explode cardinality
  - Compression: gzip for clients that accept it; recommendation lists for
    large star pools compress well

All middleware has the func(http.Handler) http.Handler shape used by chi:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.Compression).Post("/engine/run", h.EngineRun)

Authentication and authorization live in the auth and authz packages.
*/
package middleware
