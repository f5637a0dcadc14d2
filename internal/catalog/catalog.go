// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package catalog assembles the candidate pool of celestial objects for a
// recommendation run.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/models"
)

// Source is the subset of the database gateway the pool is read from.
type Source interface {
	Stars(ctx context.Context, limit int, maxMagnitude float64) ([]models.StarRecord, error)
	Planets(ctx context.Context) ([]models.PlanetRecord, error)
	Moons(ctx context.Context) ([]models.MoonRecord, error)
}

// Provider builds pools.
type Provider struct {
	src Source
	cfg config.CatalogConfig
}

// NewProvider creates a pool provider.
func NewProvider(src Source, cfg config.CatalogConfig) *Provider {
	return &Provider{src: src, cfg: cfg}
}

// Pool returns a random sample of bright stars plus every planet and moon.
// The three reads run concurrently; any failure fails the pool.
func (p *Provider) Pool(ctx context.Context) (*models.CelestialPool, error) {
	var (
		stars                          []models.StarRecord
		planets                        []models.PlanetRecord
		moons                          []models.MoonRecord
		starsErr, planetsErr, moonsErr error
		wg                             sync.WaitGroup
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		stars, starsErr = p.src.Stars(ctx, p.cfg.StarLimit, p.cfg.StarMaxMagnitude)
	}()

	go func() {
		defer wg.Done()
		planets, planetsErr = p.src.Planets(ctx)
	}()

	go func() {
		defer wg.Done()
		moons, moonsErr = p.src.Moons(ctx)
	}()

	wg.Wait()

	if starsErr != nil {
		return nil, fmt.Errorf("star query failed: %w", starsErr)
	}
	if planetsErr != nil {
		return nil, fmt.Errorf("planet query failed: %w", planetsErr)
	}
	if moonsErr != nil {
		return nil, fmt.Errorf("moon query failed: %w", moonsErr)
	}

	pool := &models.CelestialPool{Stars: stars, Planets: planets, Moons: moons}
	if pool.Stars == nil {
		pool.Stars = []models.StarRecord{}
	}
	if pool.Planets == nil {
		pool.Planets = []models.PlanetRecord{}
	}
	if pool.Moons == nil {
		pool.Moons = []models.MoonRecord{}
	}
	return pool, nil
}
