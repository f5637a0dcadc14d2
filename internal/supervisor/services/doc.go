// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

/*
Package services provides suture.Service implementations for Skyguide.

  - HTTPServerService runs the API server and shuts it down gracefully when
    the supervisor stops it
  - HeartbeatService probes the database, the engine executable and the layer
    scripts on an interval and keeps the latest snapshot for /health/ready

Both return ctx.Err() on orderly shutdown so suture does not restart them.
*/
package services
