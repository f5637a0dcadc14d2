// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

/*
Package supervisor runs Skyguide's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("skyguide")
	├── DataSupervisor ("data-layer")
	│   └── HeartbeatService (if heartbeat.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing heartbeat restarts on its own without touching the HTTP server.
Supervisor events are logged through sutureslog, which writes to the
zerolog-backed slog handler from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(heartbeat)
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))

	errCh := tree.ServeBackground(ctx)
	// ... cancel ctx on SIGTERM ...
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Once the tree has returned, UnstoppedServiceReport lists services that
ignored the shutdown timeout.
*/
package supervisor
