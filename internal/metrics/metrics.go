// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// processBuckets cover script and engine runs, which take seconds rather than milliseconds.
var processBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyguide_db_query_duration_seconds",
			Help:    "Duration of gateway queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_db_query_errors_total",
			Help: "Total number of gateway query errors",
		},
		[]string{"operation", "table", "error_type"}, // error_type: timeout, canceled, query
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyguide_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: processBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyguide_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Child Process Metrics
	ProcessInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_process_invocations_total",
			Help: "Total number of child process invocations",
		},
		[]string{"program", "outcome"}, // outcome: success, spawn_error, exit_error, timeout, canceled
	)

	ProcessDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyguide_process_duration_seconds",
			Help:    "Wall-clock duration of child processes in seconds",
			Buckets: processBuckets,
		},
		[]string{"program"},
	)

	// Signal Layer Metrics
	LayerDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_layer_decisions_total",
			Help: "Signal layer routing decisions",
		},
		[]string{"layer", "source"}, // source: fallback, compute
	)

	// Orchestration Metrics
	OrchestrationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_orchestration_runs_total",
			Help: "Total number of recommendation runs",
		},
		[]string{"outcome"},
	)

	OrchestrationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyguide_orchestration_duration_seconds",
			Help:    "End-to-end duration of recommendation runs in seconds",
			Buckets: processBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skyguide_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Heartbeat Metrics
	HeartbeatUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skyguide_heartbeat_up",
			Help: "Result of the last dependency probe (1=up, 0=down)",
		},
		[]string{"component"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "query"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordProcess records one child process invocation.
func RecordProcess(program, outcome string, duration time.Duration) {
	ProcessInvocations.WithLabelValues(program, outcome).Inc()
	ProcessDuration.WithLabelValues(program).Observe(duration.Seconds())
}

// RecordLayerDecision records which source a signal layer was served from.
func RecordLayerDecision(layer, source string) {
	LayerDecisions.WithLabelValues(layer, source).Inc()
}

// RecordOrchestration records the outcome and duration of a recommendation run.
func RecordOrchestration(outcome string, duration time.Duration) {
	OrchestrationRuns.WithLabelValues(outcome).Inc()
	OrchestrationDuration.Observe(duration.Seconds())
}

// SetHeartbeat records the latest probe result for a dependency.
func SetHeartbeat(component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	HeartbeatUp.WithLabelValues(component).Set(v)
}
