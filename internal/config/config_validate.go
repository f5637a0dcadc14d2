// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateSecurity,
		c.validateLogging,
		c.validateCatalog,
		c.validateObserver,
		c.validateLayers,
		c.validateEngine,
		c.validateHeartbeat,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DB_DRIVER is duckdb")
		}
	case "mysql":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER is mysql")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of: duckdb, mysql")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "jwt":
		if err := c.validateJWTSecret(); err != nil {
			return err
		}
	case "none":
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be one of: jwt, none")
	}

	if c.Security.AuthMode != "none" && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production with authentication enabled")
	}

	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}

	if c.Security.Casbin.DefaultRole == "" {
		return fmt.Errorf("CASBIN_DEFAULT_ROLE must not be empty")
	}

	return c.validateRateLimits()
}

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports whether wildcard CORS is combined with authentication.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AuthMode != "none" && c.hasWildcardCORS()
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.StarLimit < 1 {
		return fmt.Errorf("STAR_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateObserver() error {
	if c.Observer.DefaultLatitude < -90 || c.Observer.DefaultLatitude > 90 {
		return fmt.Errorf("DEFAULT_LATITUDE must be between -90 and 90")
	}
	if c.Observer.DefaultLongitude < -180 || c.Observer.DefaultLongitude > 180 {
		return fmt.Errorf("DEFAULT_LONGITUDE must be between -180 and 180")
	}
	return nil
}

func (c *Config) validateLayers() error {
	layers := []struct {
		name string
		cfg  LayerConfig
	}{
		{"L2", c.Layers.L2},
		{"L3", c.Layers.L3},
		{"L4", c.Layers.L4},
	}
	for _, l := range layers {
		if err := l.cfg.validate(l.name); err != nil {
			return err
		}
	}
	return nil
}

func (l LayerConfig) validate(name string) error {
	if l.MinRows < 0 {
		return fmt.Errorf("%s_MIN_ROWS must not be negative", name)
	}
	if l.Interpreter == "" || l.Script == "" {
		return fmt.Errorf("%s_INTERPRETER and %s_SCRIPT are required", name, name)
	}
	if l.OutputCSV == "" {
		return fmt.Errorf("%s_OUTPUT_CSV is required", name)
	}
	if l.OutputMode != OutputModeFramed && l.OutputMode != OutputModeArtifact {
		return fmt.Errorf("%s_OUTPUT_MODE must be one of: %s, %s", name, OutputModeFramed, OutputModeArtifact)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("%s_TIMEOUT must be positive", name)
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.Path == "" {
		return fmt.Errorf("ENGINE_PATH is required")
	}
	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("ENGINE_TIMEOUT must be positive")
	}
	if c.Engine.Marker == "" {
		return fmt.Errorf("ENGINE_MARKER must not be empty")
	}
	if c.Engine.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("ENGINE_BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	return nil
}

func (c *Config) validateHeartbeat() error {
	if c.Heartbeat.Enabled && c.Heartbeat.Interval < time.Second {
		return fmt.Errorf("HEARTBEAT_INTERVAL must be at least 1s")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}
