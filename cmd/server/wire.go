// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/skyguide/internal/catalog"
	"github.com/tomtom215/skyguide/internal/compute"
	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/database"
	"github.com/tomtom215/skyguide/internal/explorer"
	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/recommend"
)

// components holds the data plane shared by serve and probe.
type components struct {
	db      *database.DB
	invoker *compute.Invoker
	layers  *layers.Set
	pool    *catalog.Provider
	users   *explorer.Provider
	engine  *recommend.Engine
}

// loadConfig reads configuration and initializes the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	return cfg, nil
}

// buildComponents opens the database and wires the providers and engine.
// The caller owns the returned database handle.
func buildComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	logging.Info().
		Str("driver", cfg.Database.Driver).
		Msg("Opening catalog database")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Database.SeedDemoData {
		if err := db.SeedDemoData(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		logging.Info().Msg("Demo catalog seeded")
	}

	invoker := compute.NewInvoker(cfg.Compute)
	set := layers.NewSet(db, cfg.Layers, cfg.Engine.Marker, invoker)
	pool := catalog.NewProvider(db, cfg.Catalog)
	users := explorer.NewProvider(db, cfg.Observer)

	engine, err := recommend.NewEngine(cfg.Engine, recommend.Deps{
		Pool:    pool,
		Users:   users,
		L2:      set.L2,
		L3:      set.L3,
		L4:      set.L4,
		Invoker: invoker,
	}, logging.WithComponent("engine"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}

	return &components{
		db:      db,
		invoker: invoker,
		layers:  set,
		pool:    pool,
		users:   users,
		engine:  engine,
	}, nil
}
