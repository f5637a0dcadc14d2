// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/skyguide/internal/auth"
	"github.com/tomtom215/skyguide/internal/authz"
	"github.com/tomtom215/skyguide/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authn         *auth.Middleware
	authz         *authz.Middleware
}

// NewRouter creates the router. authn and authz must have been built with
// WriteMiddlewareError so rejections use the API envelope.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, authn *auth.Middleware, authzMW *authz.Middleware) *Router {
	return &Router{handler: handler, chiMiddleware: chiMW, authn: authn, authz: authzMW}
}

// WriteMiddlewareError renders auth, authz and rate limit rejections.
var WriteMiddlewareError auth.ErrorWriter = writeMiddlewareError

// SetupChi returns the HTTP handler for all routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Get("/api/v1/status", router.handler.Status)
	})

	r.Route("/api/v1/engine", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.authn.Authenticate)

		r.With(
			router.authz.Authorize(authz.ObjectEngine, authz.ActionRun),
			middleware.Compression,
		).Post("/run", router.handler.EngineRun)

		r.Group(func(r chi.Router) {
			r.Use(router.authz.Authorize(authz.ObjectProbe, authz.ActionRead))
			r.With(middleware.Compression).Get("/pool", router.handler.EnginePool)
			r.Post("/user", router.handler.EngineUser)
			r.Get("/{layer:l[234]}", router.handler.EngineLayer)
		})
	})

	return r
}
