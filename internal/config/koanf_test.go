// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("Database.MaxOpenConns = %d, want 10", cfg.Database.MaxOpenConns)
	}
	if cfg.Security.SessionTimeout != 7*24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 168h", cfg.Security.SessionTimeout)
	}
	if cfg.Catalog.StarLimit != 2000 || cfg.Catalog.StarMaxMagnitude != 12 {
		t.Errorf("Catalog = %+v, want limit 2000 magnitude 12", cfg.Catalog)
	}
	if cfg.Observer.DefaultLatitude != 51.016 || cfg.Observer.DefaultLongitude != 4.242 {
		t.Errorf("Observer = %+v, want 51.016/4.242", cfg.Observer)
	}
	if cfg.Layers.L2.MinRows != 300 || cfg.Layers.L3.MinRows != 500 || cfg.Layers.L4.MinRows != 500 {
		t.Errorf("layer minimums = %d/%d/%d, want 300/500/500",
			cfg.Layers.L2.MinRows, cfg.Layers.L3.MinRows, cfg.Layers.L4.MinRows)
	}
	if !reflect.DeepEqual(cfg.Layers.L2.InterpreterArgs, []string{"-u"}) {
		t.Errorf("Layers.L2.InterpreterArgs = %v, want [-u]", cfg.Layers.L2.InterpreterArgs)
	}
	if cfg.Engine.Marker != DefaultMarker {
		t.Errorf("Engine.Marker = %q, want %q", cfg.Engine.Marker, DefaultMarker)
	}
	if cfg.Engine.Layer4Wired {
		t.Error("Engine.Layer4Wired should be false by default")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"DATABASE_URL", "database.dsn"},
		{"L2_MIN_ROWS", "layers.l2.min_rows"},
		{"L4_OUTPUT_MODE", "layers.l4.output_mode"},
		{"ENGINE_TIMEOUT", "engine.timeout"},
		{"engine_layer4_wired", "engine.layer4_wired"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("L2_MIN_ROWS", "42")
	t.Setenv("ENGINE_TIMEOUT", "5s")
	t.Setenv("ENGINE_ARGS", "--mode, batch")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Layers.L2.MinRows != 42 {
		t.Errorf("Layers.L2.MinRows = %d, want 42", cfg.Layers.L2.MinRows)
	}
	if cfg.Engine.Timeout != 5*time.Second {
		t.Errorf("Engine.Timeout = %v, want 5s", cfg.Engine.Timeout)
	}
	if !reflect.DeepEqual(cfg.Engine.Args, []string{"--mode", "batch"}) {
		t.Errorf("Engine.Args = %v, want [--mode batch]", cfg.Engine.Args)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("Security.CORSOrigins = %v, want 2 origins", cfg.Security.CORSOrigins)
	}
	if cfg.Layers.L3.MinRows != 500 {
		t.Errorf("Layers.L3.MinRows = %d, want 500 (default)", cfg.Layers.L3.MinRows)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	configContent := `
server:
  port: 8888
security:
  auth_mode: "none"
database:
  driver: mysql
  dsn: "sky:pw@tcp(localhost:3306)/sky?parseTime=true"
layers:
  l3:
    min_rows: 10
    output_mode: framed
engine:
  path: /opt/engine/run
  layer4_wired: true
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "7777")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 (env overrides file)", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.Layers.L3.MinRows != 10 || cfg.Layers.L3.OutputMode != OutputModeFramed {
		t.Errorf("Layers.L3 = %+v, want min 10 framed", cfg.Layers.L3)
	}
	if !cfg.Engine.Layer4Wired || cfg.Engine.Path != "/opt/engine/run" {
		t.Errorf("Engine = %+v, want wired /opt/engine/run", cfg.Engine)
	}
	if cfg.Engine.Marker != DefaultMarker {
		t.Errorf("Engine.Marker = %q, want default", cfg.Engine.Marker)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"mysql without dsn", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"short secret", func(c *Config) { c.Security.JWTSecret = "short" }, true},
		{"none in production", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Server.Environment = "production"
		}, true},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, true},
		{"negative threshold", func(c *Config) { c.Layers.L2.MinRows = -1 }, true},
		{"zero threshold", func(c *Config) { c.Layers.L2.MinRows = 0 }, false},
		{"bad output mode", func(c *Config) { c.Layers.L4.OutputMode = "stdout" }, true},
		{"no engine timeout", func(c *Config) { c.Engine.Timeout = 0 }, true},
		{"empty marker", func(c *Config) { c.Engine.Marker = "" }, true},
		{"latitude out of range", func(c *Config) { c.Observer.DefaultLatitude = 91 }, true},
		{"rate limit ignored when disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			cfg.Security.JWTSecret = testSecret
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
