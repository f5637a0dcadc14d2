// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package explorer resolves the profile of the explorer a recommendation run
// is for: identity, observing position and time, and liked objects.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/database"
	"github.com/tomtom215/skyguide/internal/models"
)

// TimeLayout is the ISO-8601 form used for observation times.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrNotFound is returned when no explorer has the requested id.
var ErrNotFound = errors.New("explorer not found")

// Source is the subset of the database gateway explorers are read from.
type Source interface {
	Explorer(ctx context.Context, userID int64) (*models.Explorer, error)
	LikedObjects(ctx context.Context, userID int64) ([]models.LikedObject, error)
}

// Provider builds explorer contexts.
type Provider struct {
	src Source
	cfg config.ObserverConfig
	now func() time.Time
}

// NewProvider creates a provider using the wall clock.
func NewProvider(src Source, cfg config.ObserverConfig) *Provider {
	return &Provider{src: src, cfg: cfg, now: time.Now}
}

// WithClock replaces the clock used for the default observation time.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	p.now = now
	return p
}

// Context returns the explorer's profile. Missing coordinates fall back to
// the configured observer position and a missing time to now, in UTC.
func (p *Provider) Context(ctx context.Context, userID int64, obs models.Observation) (*models.UserContext, error) {
	var (
		who              *models.Explorer
		likes            []models.LikedObject
		whoErr, likesErr error
		wg               sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		who, whoErr = p.src.Explorer(ctx, userID)
	}()

	go func() {
		defer wg.Done()
		likes, likesErr = p.src.LikedObjects(ctx, userID)
	}()

	wg.Wait()

	if errors.Is(whoErr, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, userID)
	}
	if whoErr != nil {
		return nil, fmt.Errorf("explorer query failed: %w", whoErr)
	}
	if likesErr != nil {
		return nil, fmt.Errorf("liked objects query failed: %w", likesErr)
	}

	uc := &models.UserContext{
		ID:              who.ID,
		Name:            who.Name,
		Latitude:        p.cfg.DefaultLatitude,
		Longitude:       p.cfg.DefaultLongitude,
		ObservationTime: p.observationTime(obs.ObservationTime),
		LikedStars:      []string{},
		LikedPlanets:    []string{},
		LikedMoons:      []string{},
	}
	if obs.Latitude != nil {
		uc.Latitude = *obs.Latitude
	}
	if obs.Longitude != nil {
		uc.Longitude = *obs.Longitude
	}

	for _, lo := range likes {
		if lo.Name == "" {
			continue
		}
		switch lo.ObjectType {
		case models.ObjectStar:
			uc.LikedStars = append(uc.LikedStars, lo.Name)
		case models.ObjectPlanet:
			uc.LikedPlanets = append(uc.LikedPlanets, lo.Name)
		case models.ObjectMoon:
			uc.LikedMoons = append(uc.LikedMoons, lo.Name)
		}
	}
	return uc, nil
}

// observationTime normalizes a caller-supplied RFC 3339 time to UTC. Values
// that do not parse are passed through untouched.
func (p *Provider) observationTime(raw string) string {
	if raw == "" {
		return p.now().UTC().Format(TimeLayout)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(TimeLayout)
}
