// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/skyguide/config.yaml",
	"/etc/skyguide/config.yml",
}

// ConfigPathEnvVar names the environment variable holding an explicit config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultMarker separates diagnostic chatter from the JSON result on a
// child process's stdout.
const DefaultMarker = "---JSON_START---"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3857,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Driver:          "duckdb",
			Path:            "/data/skyguide.duckdb",
			MaxMemory:       "1GB",
			Threads:         0,
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
			QueryTimeout:    30 * time.Second,
			SeedDemoData:    false,
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			SessionTimeout:    7 * 24 * time.Hour,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			Casbin: CasbinConfig{
				DefaultRole: "explorer",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			StarLimit:        2000,
			StarMaxMagnitude: 12,
		},
		Observer: ObserverConfig{
			DefaultLatitude:  51.016,
			DefaultLongitude: 4.242,
		},
		Layers: LayersConfig{
			L2: defaultLayer(300,
				"Machine_Learning/Models/Layer_2/Scripts/Trend_Model.py",
				"Machine_Learning/Output_Data/Layer_2_Top_Trending_Per_Type.csv"),
			L3: defaultLayer(500,
				"Machine_Learning/Models/Layer_3/Scripts/Layer_3_Master_File.py",
				"Machine_Learning/Output_Data/Layer_3_Final_Predictions.csv"),
			L4: defaultLayer(500,
				"Machine_Learning/Models/Layer_4/Scripts/Master_Layer4.py",
				"Machine_Learning/Output_Data/Layer4_Final_Predictions.csv"),
		},
		Engine: EngineConfig{
			Path:    "Engine/RecommendationEngine",
			Timeout: 60 * time.Second,
			Marker:  DefaultMarker,
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Compute: ComputeConfig{
			SpawnRate:  0,
			SpawnBurst: 4,
		},
		Heartbeat: HeartbeatConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
		},
	}
}

func defaultLayer(minRows int, script, output string) LayerConfig {
	return LayerConfig{
		MinRows:         minRows,
		Interpreter:     "python",
		InterpreterArgs: []string{"-u"},
		Script:          script,
		OutputCSV:       output,
		OutputMode:      OutputModeArtifact,
		Timeout:         2 * time.Minute,
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, otherwise the first
// existing entry of DefaultConfigPaths, otherwise "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths accept comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"engine.args",
	"layers.l2.interpreter_args",
	"layers.l3.interpreter_args",
	"layers.l4.interpreter_args",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to config paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	"db_driver":            "database.driver",
	"database_url":         "database.dsn",
	"db_dsn":               "database.dsn",
	"duckdb_path":          "database.path",
	"duckdb_max_memory":    "database.max_memory",
	"duckdb_threads":       "database.threads",
	"db_max_open_conns":    "database.max_open_conns",
	"db_max_idle_conns":    "database.max_idle_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",
	"db_query_timeout":     "database.query_timeout",
	"seed_demo_data":       "database.seed_demo_data",

	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"casbin_model_path":   "security.casbin.model_path",
	"casbin_policy_path":  "security.casbin.policy_path",
	"casbin_default_role": "security.casbin.default_role",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"star_limit":         "catalog.star_limit",
	"star_max_magnitude": "catalog.star_max_magnitude",

	"default_latitude":  "observer.default_latitude",
	"default_longitude": "observer.default_longitude",

	"l2_min_rows":    "layers.l2.min_rows",
	"l2_interpreter": "layers.l2.interpreter",
	"l2_script":      "layers.l2.script",
	"l2_output_csv":  "layers.l2.output_csv",
	"l2_output_mode": "layers.l2.output_mode",
	"l2_timeout":     "layers.l2.timeout",
	"l3_min_rows":    "layers.l3.min_rows",
	"l3_interpreter": "layers.l3.interpreter",
	"l3_script":      "layers.l3.script",
	"l3_output_csv":  "layers.l3.output_csv",
	"l3_output_mode": "layers.l3.output_mode",
	"l3_timeout":     "layers.l3.timeout",
	"l4_min_rows":    "layers.l4.min_rows",
	"l4_interpreter": "layers.l4.interpreter",
	"l4_script":      "layers.l4.script",
	"l4_output_csv":  "layers.l4.output_csv",
	"l4_output_mode": "layers.l4.output_mode",
	"l4_timeout":     "layers.l4.timeout",

	"engine_path":         "engine.path",
	"engine_args":         "engine.args",
	"engine_dir":          "engine.dir",
	"engine_timeout":      "engine.timeout",
	"engine_marker":       "engine.marker",
	"engine_layer4_wired": "engine.layer4_wired",

	"engine_breaker_max_requests":      "engine.breaker.max_requests",
	"engine_breaker_interval":          "engine.breaker.interval",
	"engine_breaker_timeout":           "engine.breaker.timeout",
	"engine_breaker_failure_threshold": "engine.breaker.failure_threshold",

	"compute_spawn_rate":  "compute.spawn_rate",
	"compute_spawn_burst": "compute.spawn_burst",

	"heartbeat_enabled":  "heartbeat.enabled",
	"heartbeat_interval": "heartbeat.interval",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - L2_MIN_ROWS -> layers.l2.min_rows
//   - ENGINE_PATH -> engine.path
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
