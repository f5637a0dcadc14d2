// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package authz

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthzDecisionsTotal counts evaluated (uncached) decisions.
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_authz_decisions_total",
			Help: "Authorization decisions by role, object, action and outcome",
		},
		[]string{"role", "object", "action", "allowed"},
	)

	// AuthzDecisionDuration tracks policy evaluation latency.
	AuthzDecisionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyguide_authz_decision_duration_seconds",
			Help:    "Casbin policy evaluation latency",
			Buckets: []float64{.00001, .0001, .0005, .001, .005, .01},
		},
	)

	// AuthzCacheLookups counts decision cache hits and misses.
	AuthzCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyguide_authz_cache_lookups_total",
			Help: "Authorization cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordAuthzDecision records an evaluated decision.
func RecordAuthzDecision(role, object, action string, allowed bool, d time.Duration) {
	AuthzDecisionsTotal.WithLabelValues(role, object, action, strconv.FormatBool(allowed)).Inc()
	AuthzDecisionDuration.Observe(d.Seconds())
}

// RecordAuthzCache records a cache lookup.
func RecordAuthzCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	AuthzCacheLookups.WithLabelValues(result).Inc()
}
