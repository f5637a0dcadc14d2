// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Observer  ObserverConfig  `koanf:"observer"`
	Layers    LayersConfig    `koanf:"layers"`
	Engine    EngineConfig    `koanf:"engine"`
	Compute   ComputeConfig   `koanf:"compute"`
	Heartbeat HeartbeatConfig `koanf:"heartbeat"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig selects and tunes the catalog/interaction store.
//
// Driver "duckdb" opens an embedded file at Path and creates the schema on
// start. Driver "mysql" connects to DSN and expects the schema to exist.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	Path            string        `koanf:"path"`
	MaxMemory       string        `koanf:"max_memory"`
	Threads         int           `koanf:"threads"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
	SeedDemoData    bool          `koanf:"seed_demo_data"`
}

// SecurityConfig holds authentication and authorization settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // jwt or none
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	Casbin            CasbinConfig  `koanf:"casbin"`
}

// CasbinConfig configures the authorization enforcer. Empty paths select the
// embedded model and policy.
type CasbinConfig struct {
	ModelPath   string `koanf:"model_path"`
	PolicyPath  string `koanf:"policy_path"`
	DefaultRole string `koanf:"default_role"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig bounds the star sample drawn for each pool.
type CatalogConfig struct {
	StarLimit        int     `koanf:"star_limit"`
	StarMaxMagnitude float64 `koanf:"star_max_magnitude"`
}

// ObserverConfig holds the observer position used when a request omits one.
type ObserverConfig struct {
	DefaultLatitude  float64 `koanf:"default_latitude"`
	DefaultLongitude float64 `koanf:"default_longitude"`
}

// LayersConfig holds the three signal layers.
type LayersConfig struct {
	L2 LayerConfig `koanf:"l2"`
	L3 LayerConfig `koanf:"l3"`
	L4 LayerConfig `koanf:"l4"`
}

// Output modes for a layer script.
const (
	OutputModeFramed   = "framed"
	OutputModeArtifact = "artifact"
)

// LayerConfig describes one signal layer: how many extracted rows justify a
// live run and how the script is launched.
type LayerConfig struct {
	MinRows         int           `koanf:"min_rows"`
	Interpreter     string        `koanf:"interpreter"`
	InterpreterArgs []string      `koanf:"interpreter_args"`
	Script          string        `koanf:"script"`
	OutputCSV       string        `koanf:"output_csv"`
	OutputMode      string        `koanf:"output_mode"`
	Timeout         time.Duration `koanf:"timeout"`
}

// EngineConfig describes the native recommendation engine executable.
type EngineConfig struct {
	Path    string        `koanf:"path"`
	Args    []string      `koanf:"args"`
	Dir     string        `koanf:"dir"`
	Timeout time.Duration `koanf:"timeout"`
	Marker  string        `koanf:"marker"`

	// Layer4Wired enables passing layer 4 output to the engine. Until the
	// engine consumes it, the l4 flag is accepted and ignored.
	Layer4Wired bool `koanf:"layer4_wired"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around engine invocations.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// ComputeConfig limits how fast child processes may be spawned. A zero
// SpawnRate disables the limiter.
type ComputeConfig struct {
	SpawnRate  float64 `koanf:"spawn_rate"`
	SpawnBurst int     `koanf:"spawn_burst"`
}

// HeartbeatConfig configures the background dependency probe.
type HeartbeatConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
