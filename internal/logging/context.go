// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ctxField is both the context key and the log field name.
type ctxField string

const (
	correlationIDField ctxField = "correlation_id"
	requestIDField     ctxField = "request_id"
	runIDField         ctxField = "run_id"
)

// Fields copied from the context into every Ctx logger, in output order.
var ctxFields = []ctxField{requestIDField, correlationIDField, runIDField}

func withField(ctx context.Context, f ctxField, v string) context.Context {
	return context.WithValue(ctx, f, v)
}

func fieldFrom(ctx context.Context, f ctxField) string {
	v, _ := ctx.Value(f).(string)
	return v
}

// GenerateCorrelationID returns a short id: the first 8 characters of a UUID.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithCorrelationID attaches a correlation id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withField(ctx, correlationIDField, id)
}

// ContextWithNewCorrelationID attaches a freshly generated correlation id.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return fieldFrom(ctx, correlationIDField)
}

// ContextWithRequestID attaches the HTTP request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withField(ctx, requestIDField, id)
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	return fieldFrom(ctx, requestIDField)
}

// ContextWithRunID attaches the id of the engine run in progress.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return withField(ctx, runIDField, id)
}

// RunIDFromContext returns the run id, or "".
func RunIDFromContext(ctx context.Context) string {
	return fieldFrom(ctx, runIDField)
}

// Ctx returns the global logger annotated with whichever of request_id,
// correlation_id and run_id ctx carries.
//
//	logging.Ctx(ctx).Info().Msg("Run finished")
func Ctx(ctx context.Context) *zerolog.Logger {
	lc := Logger().With()
	for _, f := range ctxFields {
		if v := fieldFrom(ctx, f); v != "" {
			lc = lc.Str(string(f), v)
		}
	}
	l := lc.Logger()
	return &l
}

// WithComponent returns a child of the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}
