// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package recommend orchestrates one recommendation run.
//
// # Run lifecycle
//
// A run moves through these states, each logged at debug level with the
// run's id:
//
//	authorizing -> gathering -> enriching -> payload_ready -> invoking -> flattening -> done
//
// The caller identity is checked first; a run without one is rejected
// before any database read. The candidate pool and the explorer context are
// then fetched concurrently. Each requested signal layer runs in order
// (l2, l3, l4) and its rows are attached to the engine payload. The engine
// executable receives the payload on stdin and prints its result after a
// marker line; the result is decoded and flattened for clients.
//
// # Failure model
//
// Any failure ends the run. There are no partial results and no retries.
// Process failures are classified so the HTTP layer can map them:
//
//   - ErrUpstreamUnavailable: the engine could not start or its circuit is open
//   - ErrUpstreamTimeout: a child process hit its deadline and was killed
//   - *EngineFailureError: a child process exited non-zero
//   - ErrResultDecode: the output had no marker or was not valid JSON
//
// # Layer 4
//
// The neural layer is an extension point. Requests for it are honored only
// when engine.layer4_wired is set; otherwise the flag is dropped from the
// effective configuration and logged.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg.Engine, recommend.Deps{
//		Pool:    catalog.NewProvider(db, cfg.Catalog),
//		Users:   explorer.NewProvider(db, cfg.Observer),
//		L2:      set.L2,
//		L3:      set.L3,
//		L4:      set.L4,
//		Invoker: compute.NewInvoker(cfg.Compute),
//	}, logging.Logger())
//	resp, err := engine.Run(ctx, recommend.Request{Caller: caller, Layers: flags})
package recommend
