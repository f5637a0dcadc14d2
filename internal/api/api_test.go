// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/skyguide/internal/auth"
	"github.com/tomtom215/skyguide/internal/authz"
	"github.com/tomtom215/skyguide/internal/compute"
	"github.com/tomtom215/skyguide/internal/config"
	"github.com/tomtom215/skyguide/internal/explorer"
	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/models"
	"github.com/tomtom215/skyguide/internal/recommend"
	"github.com/tomtom215/skyguide/internal/supervisor/services"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakePool struct {
	calls atomic.Int32
	pool  *models.CelestialPool
}

func (f *fakePool) Pool(context.Context) (*models.CelestialPool, error) {
	f.calls.Add(1)
	return f.pool, nil
}

type fakeUsers struct {
	calls atomic.Int32
}

func (f *fakeUsers) Context(_ context.Context, id int64, obs models.Observation) (*models.UserContext, error) {
	f.calls.Add(1)
	if id == 404 {
		return nil, explorer.ErrNotFound
	}
	return &models.UserContext{
		ID:              id,
		Name:            "Lyra",
		Latitude:        51.016,
		Longitude:       4.242,
		ObservationTime: obs.ObservationTime,
		LikedStars:      []string{},
		LikedPlanets:    []string{},
		LikedMoons:      []string{},
	}, nil
}

type fakeLayer struct {
	name   string
	res    *layers.Result
	target layers.Target
}

func (f *fakeLayer) Name() string { return f.name }

func (f *fakeLayer) Invoke(_ context.Context, t layers.Target) (*layers.Result, error) {
	f.target = t
	return f.res, nil
}

type fakeLayerSet map[string]*fakeLayer

func (s fakeLayerSet) ByName(name string) layers.Layer {
	if l, ok := s[name]; ok {
		return l
	}
	return nil
}

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context) error { return f.err }

type fakeReadiness struct{ snap services.HeartbeatSnapshot }

func (f fakeReadiness) Snapshot() services.HeartbeatSnapshot { return f.snap }

// threePlanetPool has no stars, three planets and one moon.
func threePlanetPool() *models.CelestialPool {
	return &models.CelestialPool{
		Stars: []models.StarRecord{},
		Planets: []models.PlanetRecord{
			{ID: 1, Name: "Mercury"}, {ID: 4, Name: "Mars"}, {ID: 5, Name: "Jupiter"},
		},
		Moons: []models.MoonRecord{{ID: 1, Name: "Moon", Parent: "Earth"}},
	}
}

type testEnv struct {
	handler http.Handler
	jwt     *auth.JWTManager
	pool    *fakePool
	users   *fakeUsers
	layers  fakeLayerSet
}

// newTestEnv builds the full router around a /bin/sh engine running script.
func newTestEnv(t *testing.T, mode auth.AuthMode, script string) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}

	env := &testEnv{
		pool:  &fakePool{pool: threePlanetPool()},
		users: &fakeUsers{},
		layers: fakeLayerSet{
			layers.Trending: {name: layers.Trending, res: &layers.Result{
				Layer: layers.Trending, Source: layers.SourceFallback, DataSource: layers.DataSourceFictional,
				Rows: []models.LayerRow{{"Object_Name": "Vega"}},
			}},
			layers.Collaborative: {name: layers.Collaborative, res: &layers.Result{
				Layer: layers.Collaborative, Source: layers.SourceFallback, ArtifactMissing: true, Rows: []models.LayerRow{},
			}},
		},
	}

	engine, err := recommend.NewEngine(config.EngineConfig{
		Path:    "/bin/sh",
		Args:    []string{"-c", script},
		Timeout: 5 * time.Second,
		Marker:  config.DefaultMarker,
		Breaker: config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 100},
	}, recommend.Deps{
		Pool:    env.pool,
		Users:   env.users,
		Invoker: compute.NewInvoker(config.ComputeConfig{}),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	secCfg := &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour, RateLimitDisabled: true, CORSOrigins: []string{"*"}}
	env.jwt, err = auth.NewJWTManager(secCfg)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	authn, err := auth.NewMiddleware(mode, env.jwt, WriteMiddlewareError)
	if err != nil {
		t.Fatalf("auth.NewMiddleware() error = %v", err)
	}
	enforcer, err := authz.NewEnforcer(config.CasbinConfig{DefaultRole: "explorer"})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	h := NewHandler(HandlerDeps{
		Engine: engine,
		Pool:   env.pool,
		Users:  env.users,
		Layers: env.layers,
		DB:     fakeDB{},
		Authz:  enforcer,
	})
	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(secCfg)), authn, authz.NewMiddleware(enforcer, WriteMiddlewareError))
	env.handler = router.SetupChi()
	return env
}

const echoEmptyScript = `cat >/dev/null; echo "engine ready"; echo "---JSON_START---"; echo '{"Stars":[],"Planets":[],"Moons":[]}'`

func (e *testEnv) token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := e.jwt.GenerateToken(userID, "lyra", role)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success      bool                    `json:"success"`
	ActiveLayers []string                `json:"active_layers"`
	Results      *models.FlattenedResult `json:"results"`
	Data         json.RawMessage         `json:"data"`
	Error        *APIError               `json:"error"`
	Meta         Meta                    `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}
