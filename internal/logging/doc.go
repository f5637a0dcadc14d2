// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package logging provides the process-wide zerolog logger for Skyguide.
//
// The global logger is configured once from main via Init and read through
// Logger and the level helpers. Request-scoped logging goes through Ctx,
// which attaches the request and correlation ids stored by the HTTP
// middleware and the run id stored by the orchestrator.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Ctx(ctx).Info().Int64("user_id", id).Msg("Run started")
//
// Components that take a zerolog.Logger in their constructor receive
// WithComponent(name) so every line carries a component field.
//
// NewSlogLogger adapts the global logger to log/slog for sutureslog.
package logging
