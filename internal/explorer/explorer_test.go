// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package explorer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/database"
	"github.com/tomtom215/skyguide/internal/models"
)

type fakeSource struct {
	likes []models.LikedObject
}

func (f *fakeSource) Explorer(_ context.Context, id int64) (*models.Explorer, error) {
	if id != 1 {
		return nil, database.ErrNotFound
	}
	return &models.Explorer{ID: 1, Name: "Vega Watcher"}, nil
}

func (f *fakeSource) LikedObjects(context.Context, int64) ([]models.LikedObject, error) {
	return f.likes, nil
}

var observer = config.ObserverConfig{DefaultLatitude: 51.016, DefaultLongitude: 4.242}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 3, 21, 30, 0, 0, time.FixedZone("CET", 3600))
}

func TestContextDefaults(t *testing.T) {
	t.Parallel()

	p := NewProvider(&fakeSource{}, observer).WithClock(fixedClock)
	uc, err := p.Context(context.Background(), 1, models.Observation{})
	if err != nil {
		t.Fatalf("Context() error = %v", err)
	}
	if uc.Latitude != 51.016 || uc.Longitude != 4.242 {
		t.Errorf("Expected default position, got %v/%v", uc.Latitude, uc.Longitude)
	}
	if uc.ObservationTime != "2026-03-03T20:30:00.000Z" {
		t.Errorf("Expected UTC observation time, got %s", uc.ObservationTime)
	}
	if uc.LikedStars == nil || uc.LikedPlanets == nil || uc.LikedMoons == nil {
		t.Error("Expected non-nil liked lists")
	}
}

func TestContextOverridesAndLikes(t *testing.T) {
	t.Parallel()

	lat, lon := -33.9, 18.4
	src := &fakeSource{likes: []models.LikedObject{
		{ObjectType: models.ObjectStar, Name: "Sirius"},
		{ObjectType: models.ObjectPlanet, Name: "Saturn"},
		{ObjectType: models.ObjectMoon, Name: "Titan"},
		{ObjectType: models.ObjectStar, Name: ""},
		{ObjectType: models.ObjectStar, Name: "Vega"},
	}}
	p := NewProvider(src, observer)

	uc, err := p.Context(context.Background(), 1, models.Observation{
		Latitude:        &lat,
		Longitude:       &lon,
		ObservationTime: "2026-06-21T22:00:00+02:00",
	})
	if err != nil {
		t.Fatalf("Context() error = %v", err)
	}
	if uc.Latitude != lat || uc.Longitude != lon {
		t.Errorf("Expected supplied position, got %v/%v", uc.Latitude, uc.Longitude)
	}
	if uc.ObservationTime != "2026-06-21T20:00:00.000Z" {
		t.Errorf("Expected normalized time, got %s", uc.ObservationTime)
	}
	if !reflect.DeepEqual(uc.LikedStars, []string{"Sirius", "Vega"}) {
		t.Errorf("Expected liked stars [Sirius Vega], got %v", uc.LikedStars)
	}
	if !reflect.DeepEqual(uc.LikedPlanets, []string{"Saturn"}) || !reflect.DeepEqual(uc.LikedMoons, []string{"Titan"}) {
		t.Errorf("Unexpected likes: planets %v moons %v", uc.LikedPlanets, uc.LikedMoons)
	}
}

func TestContextNotFound(t *testing.T) {
	t.Parallel()

	p := NewProvider(&fakeSource{}, observer)
	if _, err := p.Context(context.Background(), 42, models.Observation{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
