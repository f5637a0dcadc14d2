// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package recommend

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/skyguide/internal/compute"
	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/database"
	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/models"
)

type fakePool struct {
	calls atomic.Int32
	pool  *models.CelestialPool
	err   error
}

func (f *fakePool) Pool(context.Context) (*models.CelestialPool, error) {
	f.calls.Add(1)
	return f.pool, f.err
}

type fakeUsers struct {
	calls atomic.Int32
}

func (f *fakeUsers) Context(_ context.Context, id int64, _ models.Observation) (*models.UserContext, error) {
	f.calls.Add(1)
	return &models.UserContext{ID: id, Name: "Vega Watcher", LikedStars: []string{}, LikedPlanets: []string{}, LikedMoons: []string{}}, nil
}

type fakeLayer struct {
	name  string
	calls atomic.Int32
	res   *layers.Result
	err   error
}

func (f *fakeLayer) Name() string { return f.name }

func (f *fakeLayer) Invoke(context.Context, layers.Target) (*layers.Result, error) {
	f.calls.Add(1)
	return f.res, f.err
}

// fakeInvoker records the payload and answers with result or err.
type fakeInvoker struct {
	calls   atomic.Int32
	payload *models.EnginePayload
	result  models.EngineResult
	err     error
}

func (f *fakeInvoker) Invoke(_ context.Context, _ compute.Command, input any, _ string, result any) error {
	f.calls.Add(1)
	f.payload = input.(*models.EnginePayload)
	if f.err != nil {
		return f.err
	}
	*result.(*models.EngineResult) = f.result
	return nil
}

func testPool() *models.CelestialPool {
	return &models.CelestialPool{
		Stars:   []models.StarRecord{},
		Planets: []models.PlanetRecord{{ID: 1, Name: "Mars"}, {ID: 2, Name: "Venus"}, {ID: 3, Name: "Jupiter"}},
		Moons:   []models.MoonRecord{{ID: 1, Name: "Moon", Parent: "Earth"}},
	}
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		Path:    "/opt/engine",
		Timeout: 5 * time.Second,
		Marker:  config.DefaultMarker,
		Breaker: config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 3},
	}
}

func newTestEngine(t *testing.T, cfg config.EngineConfig, deps Deps) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, deps, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestRunUnauthorized(t *testing.T) {
	t.Parallel()

	pool, users, inv := &fakePool{pool: testPool()}, &fakeUsers{}, &fakeInvoker{}
	e := newTestEngine(t, testEngineConfig(), Deps{Pool: pool, Users: users, Invoker: inv})

	_, err := e.Run(context.Background(), Request{Layers: models.LayerFlags{L2: true}})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
	if pool.calls.Load() != 0 || users.calls.Load() != 0 {
		t.Errorf("Expected no data reads, got pool=%d users=%d", pool.calls.Load(), users.calls.Load())
	}
	if inv.calls.Load() != 0 {
		t.Errorf("Expected no spawns, got %d", inv.calls.Load())
	}
}

func TestRunNoLayers(t *testing.T) {
	t.Parallel()

	inv := &fakeInvoker{}
	e := newTestEngine(t, testEngineConfig(), Deps{Pool: &fakePool{pool: testPool()}, Users: &fakeUsers{}, Invoker: inv})

	resp, err := e.Run(context.Background(), Request{Caller: Caller{UserID: 1}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(resp.ActiveLayers) != 0 || resp.ActiveLayers == nil {
		t.Errorf("Expected empty active layers, got %v", resp.ActiveLayers)
	}
	if len(resp.Results.Stars)+len(resp.Results.Planets)+len(resp.Results.Moons) != 0 {
		t.Errorf("Expected empty results, got %+v", resp.Results)
	}
	if resp.Results.Stars == nil || resp.Results.Planets == nil || resp.Results.Moons == nil {
		t.Error("Expected non-nil result lists")
	}

	p := inv.payload
	if p.User == nil || p.Pool == nil {
		t.Fatal("Expected user and pool in payload")
	}
	if len(p.Pool.Planets) != 3 || len(p.Pool.Moons) != 1 {
		t.Errorf("Expected pool 3 planets 1 moon, got %+v", p.Pool.Count())
	}
	if p.Layer2Data != nil || p.Layer3Data != nil || p.Layer4Data != nil {
		t.Error("Expected null layer data")
	}
}

func TestRunLayers(t *testing.T) {
	t.Parallel()

	l2 := &fakeLayer{name: "l2", res: &layers.Result{Rows: []models.LayerRow{{"Object_ID": "3"}}}}
	l3 := &fakeLayer{name: "l3", res: &layers.Result{
		Rows:     []models.LayerRow{{"User_ID": "1"}, {"User_ID": "2"}},
		Selected: models.LayerRow{"User_ID": "1"},
	}}
	l4 := &fakeLayer{name: "l4", res: &layers.Result{Rows: []models.LayerRow{{"Score": "0.1"}}}}

	tests := []struct {
		name        string
		wired       bool
		wantActive  []string
		wantL4Calls int32
	}{
		{"layer 4 not wired", false, []string{"l2", "l3"}, 0},
		{"layer 4 wired", true, []string{"l2", "l3", "l4"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l4.calls.Store(0)
			cfg := testEngineConfig()
			cfg.Layer4Wired = tt.wired
			inv := &fakeInvoker{}
			e := newTestEngine(t, cfg, Deps{
				Pool: &fakePool{pool: testPool()}, Users: &fakeUsers{},
				L2: l2, L3: l3, L4: l4, Invoker: inv,
			})

			resp, err := e.Run(context.Background(), Request{
				Caller: Caller{UserID: 1},
				Layers: models.LayerFlags{L2: true, L3: true, L4: true},
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !reflect.DeepEqual(resp.ActiveLayers, tt.wantActive) {
				t.Errorf("Expected active %v, got %v", tt.wantActive, resp.ActiveLayers)
			}
			if l4.calls.Load() != tt.wantL4Calls {
				t.Errorf("Expected %d layer 4 calls, got %d", tt.wantL4Calls, l4.calls.Load())
			}

			p := inv.payload
			if p.Config.L4 != tt.wired {
				t.Errorf("Expected payload Config.L4 = %v", tt.wired)
			}
			if len(p.Layer2Data) != 1 {
				t.Errorf("Expected layer 2 rows attached, got %v", p.Layer2Data)
			}
			if p.Layer3Data["User_ID"] != "1" {
				t.Errorf("Expected single selected layer 3 row, got %v", p.Layer3Data)
			}
			if tt.wired != (p.Layer4Data != nil) {
				t.Errorf("Unexpected layer 4 data %v", p.Layer4Data)
			}
		})
	}
}

func TestRunErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"spawn", compute.ErrSpawn, func(err error) bool { return errors.Is(err, ErrUpstreamUnavailable) }},
		{"timeout", compute.ErrTimeout, func(err error) bool { return errors.Is(err, ErrUpstreamTimeout) }},
		{"framing", compute.ErrFraming, func(err error) bool { return errors.Is(err, ErrResultDecode) }},
		{"decode", compute.ErrDecode, func(err error) bool { return errors.Is(err, ErrResultDecode) }},
		{"exit", &compute.ExitError{Program: "engine", Code: 2, Stderr: "segfault"}, func(err error) bool {
			var f *EngineFailureError
			return errors.As(err, &f) && f.ExitCode == 2 && f.Stderr == "segfault"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, testEngineConfig(), Deps{
				Pool: &fakePool{pool: testPool()}, Users: &fakeUsers{}, Invoker: &fakeInvoker{err: tt.err},
			})
			_, err := e.Run(context.Background(), Request{Caller: Caller{UserID: 1}})
			if !tt.check(err) {
				t.Errorf("Unexpected error classification: %v", err)
			}
		})
	}
}

func TestRunPropagatesQueryError(t *testing.T) {
	t.Parallel()

	queryErr := &database.QueryError{Op: "stars", Err: errors.New("connection reset")}
	inv := &fakeInvoker{}
	e := newTestEngine(t, testEngineConfig(), Deps{Pool: &fakePool{err: queryErr}, Users: &fakeUsers{}, Invoker: inv})

	_, err := e.Run(context.Background(), Request{Caller: Caller{UserID: 1}})
	if !errors.Is(err, database.ErrQuery) {
		t.Errorf("Expected ErrQuery, got %v", err)
	}
	if inv.calls.Load() != 0 {
		t.Errorf("Expected engine not to run, got %d calls", inv.calls.Load())
	}
}

func TestRunLayerFailureEndsRun(t *testing.T) {
	t.Parallel()

	l2 := &fakeLayer{name: "l2", err: &compute.ExitError{Program: "layer_l2", Code: 1}}
	inv := &fakeInvoker{}
	e := newTestEngine(t, testEngineConfig(), Deps{
		Pool: &fakePool{pool: testPool()}, Users: &fakeUsers{}, L2: l2, Invoker: inv,
	})

	_, err := e.Run(context.Background(), Request{Caller: Caller{UserID: 1}, Layers: models.LayerFlags{L2: true}})
	var f *EngineFailureError
	if !errors.As(err, &f) || f.Program != "layer_l2" {
		t.Errorf("Expected layer failure, got %v", err)
	}
	if inv.calls.Load() != 0 {
		t.Errorf("Expected engine not to run, got %d calls", inv.calls.Load())
	}
}

func TestBreakerOpens(t *testing.T) {
	t.Parallel()

	inv := &fakeInvoker{err: compute.ErrSpawn}
	e := newTestEngine(t, testEngineConfig(), Deps{Pool: &fakePool{pool: testPool()}, Users: &fakeUsers{}, Invoker: inv})
	req := Request{Caller: Caller{UserID: 1}}

	for range 3 {
		_, _ = e.Run(context.Background(), req)
	}
	if e.BreakerState() != "open" {
		t.Fatalf("Expected open breaker, got %s", e.BreakerState())
	}

	_, err := e.Run(context.Background(), req)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("Expected ErrUpstreamUnavailable from open breaker, got %v", err)
	}
	if inv.calls.Load() != 3 {
		t.Errorf("Expected open breaker to skip the invoker, got %d calls", inv.calls.Load())
	}
}

func TestRunIdempotent(t *testing.T) {
	t.Parallel()

	inv := &fakeInvoker{result: models.EngineResult{
		Planets: []models.Scored[models.PlanetRecord]{{
			Object: models.PlanetRecord{ID: 3, Name: "Jupiter"},
			Score:  models.MatchScore{Score: 0.9, Percentage: 90},
			Boost:  models.BoostInfo{Amount: "Boosted: 5%"},
		}},
	}}
	e := newTestEngine(t, testEngineConfig(), Deps{Pool: &fakePool{pool: testPool()}, Users: &fakeUsers{}, Invoker: inv})
	req := Request{Caller: Caller{UserID: 1}}

	first, err := e.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := e.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Errorf("Expected identical results, got %+v and %+v", first.Results, second.Results)
	}
	if first.Results.Planets[0].BoostAmountPct != 5 {
		t.Errorf("Expected boost 5, got %v", first.Results.Planets[0].BoostAmountPct)
	}
	if first.RunID == second.RunID {
		t.Error("Expected distinct run ids")
	}
}

// TestRunWithShellEngine drives a real child process through compute.Invoker.
func TestRunWithShellEngine(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}

	cfg := testEngineConfig()
	cfg.Path = "/bin/sh"
	cfg.Args = []string{"-c", `cat >/dev/null; echo "computing"; echo "` + config.DefaultMarker + `"; echo '{"Stars":[],"Planets":[],"Moons":[]}'`}

	e := newTestEngine(t, cfg, Deps{
		Pool: &fakePool{pool: testPool()}, Users: &fakeUsers{}, Invoker: compute.NewInvoker(config.ComputeConfig{}),
	})
	resp, err := e.Run(context.Background(), Request{Caller: Caller{UserID: 1}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(resp.Results.Planets) != 0 || resp.Results.Planets == nil {
		t.Errorf("Expected empty planet list, got %v", resp.Results.Planets)
	}
}
