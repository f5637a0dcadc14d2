// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

/*
Package compute runs external programs as child processes.

Each invocation gets its own deadline. When the deadline passes the child is
killed and the call returns ErrTimeout. Input is written to the child's stdin
and stdout is captured in full. Structured results are located in stdout by
a marker line: everything after the LAST occurrence of the marker is the JSON
document, so diagnostic prints before it are tolerated.

	inv := compute.NewInvoker(cfg.Compute)
	var res models.EngineResult
	err := inv.Invoke(ctx, compute.Command{
		Name:    "engine",
		Path:    cfg.Engine.Path,
		Timeout: cfg.Engine.Timeout,
	}, payload, config.DefaultMarker, &res)

Spawn rate can be bounded with a token bucket (golang.org/x/time/rate) so a
burst of requests cannot fork an unbounded number of interpreters.
*/
package compute
