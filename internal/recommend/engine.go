// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/skyguide/internal/compute"
	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/flatten"
	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/metrics"
	"github.com/tomtom215/skyguide/internal/models"
)

// PoolSource provides the candidate pool.
type PoolSource interface {
	Pool(ctx context.Context) (*models.CelestialPool, error)
}

// ContextSource provides the explorer context.
type ContextSource interface {
	Context(ctx context.Context, userID int64, obs models.Observation) (*models.UserContext, error)
}

// Invoker runs a framed JSON process. *compute.Invoker implements it.
type Invoker interface {
	Invoke(ctx context.Context, cmd compute.Command, input any, marker string, result any) error
}

// Deps are the collaborators of an Engine. A nil layer is treated as
// disabled.
type Deps struct {
	Pool    PoolSource
	Users   ContextSource
	L2      layers.Layer
	L3      layers.Layer
	L4      layers.Layer
	Invoker Invoker
}

// Caller is the authenticated explorer a run is for.
type Caller struct {
	UserID   int64
	Username string
	Role     string
}

// Request is one recommendation run.
type Request struct {
	Caller      Caller
	Observation models.Observation
	Layers      models.LayerFlags
}

// Response is a successful run.
type Response struct {
	RunID        string
	ActiveLayers []string
	Results      *models.FlattenedResult
}

// Engine orchestrates recommendation runs. It keeps no per-run state and is
// safe for concurrent use.
type Engine struct {
	cfg     config.EngineConfig
	deps    Deps
	breaker *gobreaker.CircuitBreaker[*models.EngineResult]
	logger  zerolog.Logger
}

// NewEngine creates an engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg config.EngineConfig, deps Deps, logger zerolog.Logger) (*Engine, error) {
	if deps.Pool == nil || deps.Users == nil || deps.Invoker == nil {
		return nil, fmt.Errorf("recommend: pool, users and invoker are required")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("recommend: engine path is required")
	}
	if cfg.Marker == "" {
		cfg.Marker = config.DefaultMarker
	}
	return &Engine{
		cfg:     cfg,
		deps:    deps,
		breaker: newBreaker(cfg.Breaker),
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// BreakerState reports the engine circuit state.
func (e *Engine) BreakerState() string {
	return e.breaker.State().String()
}

// Run executes one recommendation run.
func (e *Engine) Run(ctx context.Context, req Request) (resp *Response, err error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = logging.ContextWithRunID(ctx, runID)
	log := e.logger.With().
		Str("run_id", runID).
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int64("user_id", req.Caller.UserID).
		Logger()

	defer func() {
		metrics.RecordOrchestration(outcome(err), time.Since(start))
		if err != nil {
			log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("Recommendation run failed")
		}
	}()

	log.Debug().Str("state", "authorizing").Msg("Run state")
	if req.Caller.UserID <= 0 {
		return nil, ErrUnauthorized
	}

	log.Debug().Str("state", "gathering").Msg("Run state")
	pool, user, err := e.gather(ctx, req)
	if err != nil {
		return nil, err
	}

	flags := e.effectiveLayers(req.Layers, log)
	payload := &models.EnginePayload{User: user, Pool: pool, Config: flags}

	log.Debug().Str("state", "enriching").Strs("layers", flags.Active()).Msg("Run state")
	if err := e.enrich(ctx, payload); err != nil {
		return nil, err
	}

	log.Debug().Str("state", "payload_ready").
		Int("stars", len(pool.Stars)).
		Int("planets", len(pool.Planets)).
		Int("moons", len(pool.Moons)).
		Msg("Run state")

	log.Debug().Str("state", "invoking").Msg("Run state")
	result, err := e.invoke(ctx, payload)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("state", "flattening").Msg("Run state")
	flat := flatten.Flatten(result)

	log.Info().
		Strs("layers", flags.Active()).
		Int("stars", len(flat.Stars)).
		Int("planets", len(flat.Planets)).
		Int("moons", len(flat.Moons)).
		Dur("duration", time.Since(start)).
		Msg("Recommendation run completed")

	return &Response{RunID: runID, ActiveLayers: flags.Active(), Results: flat}, nil
}

// gather fetches the pool and the explorer context concurrently.
func (e *Engine) gather(ctx context.Context, req Request) (*models.CelestialPool, *models.UserContext, error) {
	var (
		pool             *models.CelestialPool
		user             *models.UserContext
		poolErr, userErr error
		wg               sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		pool, poolErr = e.deps.Pool.Pool(ctx)
	}()

	go func() {
		defer wg.Done()
		user, userErr = e.deps.Users.Context(ctx, req.Caller.UserID, req.Observation)
	}()

	wg.Wait()

	if poolErr != nil {
		return nil, nil, fmt.Errorf("pool: %w", poolErr)
	}
	if userErr != nil {
		return nil, nil, fmt.Errorf("user context: %w", userErr)
	}
	return pool, user, nil
}

// effectiveLayers drops flags for layers that are not available.
func (e *Engine) effectiveLayers(requested models.LayerFlags, log zerolog.Logger) models.LayerFlags {
	flags := requested
	if flags.L4 && !e.cfg.Layer4Wired {
		log.Info().Msg("Layer 4 requested but not wired, ignoring")
		flags.L4 = false
	}
	if flags.L2 && e.deps.L2 == nil {
		flags.L2 = false
	}
	if flags.L3 && e.deps.L3 == nil {
		flags.L3 = false
	}
	if flags.L4 && e.deps.L4 == nil {
		flags.L4 = false
	}
	return flags
}

// enrich runs the enabled layers in order and attaches their rows.
func (e *Engine) enrich(ctx context.Context, payload *models.EnginePayload) error {
	target := layers.ForContext(payload.User)

	if payload.Config.L2 {
		res, err := e.deps.L2.Invoke(ctx, target)
		if err != nil {
			return classify(fmt.Errorf("layer l2: %w", err))
		}
		payload.Layer2Data = res.Rows
	}
	if payload.Config.L3 {
		res, err := e.deps.L3.Invoke(ctx, target)
		if err != nil {
			return classify(fmt.Errorf("layer l3: %w", err))
		}
		payload.Layer3Data = res.Selected
	}
	if payload.Config.L4 {
		res, err := e.deps.L4.Invoke(ctx, target)
		if err != nil {
			return classify(fmt.Errorf("layer l4: %w", err))
		}
		payload.Layer4Data = res.Rows
	}
	return nil
}

// invoke runs the engine executable through the circuit breaker.
func (e *Engine) invoke(ctx context.Context, payload *models.EnginePayload) (*models.EngineResult, error) {
	if payload.User == nil || payload.Pool == nil {
		return nil, fmt.Errorf("recommend: payload is missing user or pool")
	}

	cmd := compute.Command{
		Name:    "engine",
		Path:    e.cfg.Path,
		Args:    e.cfg.Args,
		Dir:     e.cfg.Dir,
		Timeout: e.cfg.Timeout,
	}

	result, err := e.breaker.Execute(func() (*models.EngineResult, error) {
		var r models.EngineResult
		if err := e.deps.Invoker.Invoke(ctx, cmd, payload, e.cfg.Marker, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
	recordBreakerResult(err)
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}
