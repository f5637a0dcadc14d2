// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/skyguide/internal/api"
	"github.com/tomtom215/skyguide/internal/auth"
	"github.com/tomtom215/skyguide/internal/authz"
	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/supervisor"
	"github.com/tomtom215/skyguide/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Start the recommendation API and the heartbeat under a supervisor tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logging.Info().
		Str("version", Version).
		Str("commit", Commit).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Skyguide")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS before exposing the API")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	comp, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := comp.db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	authn, err := buildAuthentication(&cfg.Security)
	if err != nil {
		return err
	}

	enforcer, err := authz.NewEnforcer(cfg.Security.Casbin)
	if err != nil {
		return fmt.Errorf("create authorization enforcer: %w", err)
	}
	defer enforcer.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	deps := api.HandlerDeps{
		Engine: comp.engine,
		Pool:   comp.pool,
		Users:  comp.users,
		Layers: comp.layers,
		DB:     comp.db,
		Authz:  enforcer,
	}

	if cfg.Heartbeat.Enabled {
		heartbeat := services.NewHeartbeatService(heartbeatChecks(cfg, comp), cfg.Heartbeat.Interval,
			logging.WithComponent("heartbeat"))
		tree.AddDataService(heartbeat)
		deps.Readiness = heartbeat
		logging.Info().Dur("interval", cfg.Heartbeat.Interval).Msg("Heartbeat enabled")
	}

	router := api.NewRouter(
		api.NewHandler(deps),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)),
		authn,
		authz.NewMiddleware(enforcer, api.WriteMiddlewareError),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, logging.WithComponent("http")))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Str("auth_mode", string(authn.Mode())).Msg("Server listening")

	errCh := tree.ServeBackground(ctx)

	// The tree reports exactly once, either after shutdown or on its own.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
		cancel()
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	logging.Info().Msg("Server stopped")
	return nil
}

// buildAuthentication returns the authentication middleware for the
// configured mode. The JWT manager is only created in jwt mode.
func buildAuthentication(cfg *config.SecurityConfig) (*auth.Middleware, error) {
	mode, err := auth.ParseAuthMode(cfg.AuthMode)
	if err != nil {
		return nil, err
	}

	var manager *auth.JWTManager
	if mode == auth.AuthModeJWT {
		manager, err = auth.NewJWTManager(cfg)
		if err != nil {
			return nil, fmt.Errorf("create JWT manager: %w", err)
		}
	} else {
		logging.Warn().Msg("Authentication disabled; engine runs will be rejected")
	}

	return auth.NewMiddleware(mode, manager, api.WriteMiddlewareError)
}

// heartbeatChecks probes the database, the engine binary and every
// configured layer script.
func heartbeatChecks(cfg *config.Config, comp *components) []services.Check {
	checks := []services.Check{
		services.PingCheck("database", comp.db.Ping),
	}
	if cfg.Engine.Path != "" {
		checks = append(checks, services.ExecutableCheck("engine", cfg.Engine.Path))
	}
	scripts := []struct {
		name  string
		layer config.LayerConfig
	}{
		{layers.Trending, cfg.Layers.L2},
		{layers.Collaborative, cfg.Layers.L3},
		{layers.Neural, cfg.Layers.L4},
	}
	for _, s := range scripts {
		if s.layer.Script != "" {
			checks = append(checks, services.FileCheck(s.name+"_script", s.layer.Script))
		}
	}
	return checks
}

// writeTimeout keeps the response deadline past the engine deadline so a
// timed-out run can still report UpstreamTimeout.
func writeTimeout(cfg *config.Config) time.Duration {
	if floor := cfg.Engine.Timeout + 5*time.Second; cfg.Server.Timeout < floor {
		return floor
	}
	return cfg.Server.Timeout
}
