// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package layers

import (
	"context"

	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/models"
)

// SignalSource is the subset of the database gateway the layers read.
type SignalSource interface {
	TrendInteractions(ctx context.Context) ([]models.InteractionRow, error)
	CategorySignals(ctx context.Context) ([]models.SignalRow, error)
}

// Set holds the three configured layers.
type Set struct {
	L2 *Provider[models.InteractionRow]
	L3 *Provider[models.SignalRow]
	L4 *Provider[models.SignalRow]
}

// NewSet wires the trending, collaborative and neural layers to src.
func NewSet(src SignalSource, cfg config.LayersConfig, marker string, runner Runner) *Set {
	trend := func(ctx context.Context, _ Target) ([]models.InteractionRow, error) {
		return src.TrendInteractions(ctx)
	}
	// Collaborative and neural models learn from every explorer's signals;
	// the target only picks the selected row afterwards.
	signals := func(ctx context.Context, _ Target) ([]models.SignalRow, error) {
		return src.CategorySignals(ctx)
	}

	return &Set{
		L2: NewProvider(Trending, cfg.L2, marker, trend, runner),
		L3: NewProvider(Collaborative, cfg.L3, marker, signals, runner).SelectUser(),
		L4: NewProvider(Neural, cfg.L4, marker, signals, runner),
	}
}

// ByName returns the layer with the given name, or nil.
func (s *Set) ByName(name string) Layer {
	switch name {
	case Trending:
		return s.L2
	case Collaborative:
		return s.L3
	case Neural:
		return s.L4
	}
	return nil
}
