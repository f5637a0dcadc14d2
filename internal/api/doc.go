// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

/*
Package api is the HTTP surface of Skyguide.

Routes (see Router.SetupChi):

	GET  /metrics                  Prometheus exposition
	GET  /api/v1/health/live       process liveness
	GET  /api/v1/health/ready      latest heartbeat snapshot
	GET  /api/v1/status            service and database status
	POST /api/v1/engine/run        recommendation run
	GET  /api/v1/engine/pool       celestial pool probe
	POST /api/v1/engine/user       explorer context probe
	GET  /api/v1/engine/{layer}    signal layer probe (l2, l3, l4)

Engine routes require a bearer JWT and a Casbin grant for the caller's role.

Every response uses the same envelope. Successful runs return:

	{"success":true,"active_layers":["l2"],"results":{"Stars":[],"Planets":[],"Moons":[]},"meta":{...}}

Failures return:

	{"success":false,"error":{"code":"UPSTREAM_TIMEOUT","message":"...","request_id":"..."},"meta":{...}}

Error details such as the engine's exit code and stderr are only included
for roles granted diagnostics:read.
*/
package api
