// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package authz authorizes authenticated callers with a Casbin RBAC model.
//
// The model and policy are embedded and can be overridden with files from
// configuration. Decisions are cached per role, object and action.
package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/tomtom215/skyguide/internal/config"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Objects and actions used by the HTTP layer.
const (
	ObjectEngine      = "engine"
	ObjectProbe       = "probe"
	ObjectDiagnostics = "diagnostics"

	ActionRun  = "run"
	ActionRead = "read"
)

const defaultCacheTTL = 5 * time.Minute

// Enforcer wraps the Casbin enforcer with a decision cache.
type Enforcer struct {
	enforcer    *casbin.SyncedEnforcer
	defaultRole string
	cache       *decisionCache
}

// NewEnforcer creates an enforcer from the configured model and policy files,
// falling back to the embedded ones when a path is empty or missing.
func NewEnforcer(cfg config.CasbinConfig) (*Enforcer, error) {
	var (
		m   model.Model
		err error
	)
	if cfg.ModelPath != "" && fileExists(cfg.ModelPath) {
		m, err = model.NewModelFromFile(cfg.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if cfg.PolicyPath != "" && fileExists(cfg.PolicyPath) {
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadEmbeddedPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{
		enforcer:    enforcer,
		defaultRole: cfg.DefaultRole,
		cache:       newDecisionCache(defaultCacheTTL),
	}, nil
}

// loadEmbeddedPolicy parses policy CSV lines into the enforcer.
func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		rule := parts[1:]

		switch parts[0] {
		case "p":
			if len(rule) >= 3 {
				if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
					return fmt.Errorf("failed to add policy %v: %w", rule, err)
				}
			}
		case "g":
			if len(rule) >= 2 {
				if _, err := enforcer.AddGroupingPolicy(rule[0], rule[1]); err != nil {
					return fmt.Errorf("failed to add grouping policy %v: %w", rule, err)
				}
			}
		}
	}
	return nil
}

// Enforce reports whether role may perform action on object. An empty role
// is evaluated as the default role.
func (e *Enforcer) Enforce(role, object, action string) (bool, error) {
	if role == "" {
		role = e.defaultRole
	}
	if role == "" {
		return false, nil
	}

	start := time.Now()
	if allowed, ok := e.cache.get(role, object, action); ok {
		RecordAuthzCache(true)
		return allowed, nil
	}
	RecordAuthzCache(false)

	allowed, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}
	e.cache.set(role, object, action, allowed)
	RecordAuthzDecision(role, object, action, allowed, time.Since(start))
	return allowed, nil
}

// Allowed is Enforce with errors treated as a denial.
func (e *Enforcer) Allowed(role, object, action string) bool {
	allowed, err := e.Enforce(role, object, action)
	return err == nil && allowed
}

// Close drops cached decisions.
func (e *Enforcer) Close() {
	e.cache.purge()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
