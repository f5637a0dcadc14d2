// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package metrics holds the Prometheus collectors for Skyguide.
//
// Collectors are registered with the default registry through promauto and
// exposed on GET /metrics. Instrumented areas:
//
//   - HTTP API: request counts, latency, in-flight requests
//   - Gateway: query latency and errors per operation
//   - Child processes: invocations by outcome and run time per program
//   - Signal layers: routing decisions (fallback vs compute)
//   - Orchestration: runs by outcome and end-to-end latency
//   - Circuit breaker around the engine
//   - Heartbeat: last probe result per dependency
package metrics
