// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package authz

import (
	"sync"
	"time"
)

// maxCachedDecisions caps the cache. Roles come from signed tokens and the
// object/action sets are fixed, so the cap is only reached by a role explosion.
const maxCachedDecisions = 1024

type decisionKey struct {
	role, object, action string
}

type decision struct {
	allowed   bool
	expiresAt time.Time
}

// decisionCache remembers policy answers for ttl. Expired entries are
// dropped on lookup.
type decisionCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[decisionKey]decision
}

func newDecisionCache(ttl time.Duration) *decisionCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &decisionCache{ttl: ttl, now: time.Now, entries: make(map[decisionKey]decision)}
}

func (c *decisionCache) get(role, object, action string) (allowed, ok bool) {
	k := decisionKey{role, object, action}

	c.mu.Lock()
	defer c.mu.Unlock()

	d, found := c.entries[k]
	if !found {
		return false, false
	}
	if c.now().After(d.expiresAt) {
		delete(c.entries, k)
		return false, false
	}
	return d.allowed, true
}

func (c *decisionCache) set(role, object, action string, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= maxCachedDecisions {
		clear(c.entries)
	}
	c.entries[decisionKey{role, object, action}] = decision{allowed: allowed, expiresAt: c.now().Add(c.ttl)}
}

func (c *decisionCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// purge forgets every decision, e.g. after a policy reload.
func (c *decisionCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
