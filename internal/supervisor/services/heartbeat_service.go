// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/skyguide/internal/metrics"
)

// Check is one heartbeat probe.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// ComponentStatus is the last result of a check.
type ComponentStatus struct {
	Name  string `json:"name"`
	Up    bool   `json:"up"`
	Error string `json:"error,omitempty"`
}

// HeartbeatSnapshot is the outcome of one heartbeat round.
type HeartbeatSnapshot struct {
	Ready      bool              `json:"ready"`
	CheckedAt  time.Time         `json:"checked_at"`
	Components []ComponentStatus `json:"components"`
}

const (
	defaultHeartbeatInterval = 30 * time.Second
	checkTimeout             = 5 * time.Second
)

// HeartbeatService runs the checks on an interval. The snapshot is not
// ready until the first round has completed.
type HeartbeatService struct {
	checks   []Check
	interval time.Duration
	logger   zerolog.Logger

	mu       sync.RWMutex
	snapshot HeartbeatSnapshot
}

// NewHeartbeatService creates the service. A non-positive interval selects 30s.
func NewHeartbeatService(checks []Check, interval time.Duration, logger zerolog.Logger) *HeartbeatService {
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}
	return &HeartbeatService{
		checks:   checks,
		interval: interval,
		logger:   logger.With().Str("service", "heartbeat").Logger(),
	}
}

// Serve implements suture.Service.
func (s *HeartbeatService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Int("checks", len(s.checks)).Msg("heartbeat starting")
	s.Beat(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Beat(ctx)
		}
	}
}

// Beat runs every check concurrently and publishes the result.
func (s *HeartbeatService) Beat(ctx context.Context) HeartbeatSnapshot {
	statuses := make([]ComponentStatus, len(s.checks))

	var wg sync.WaitGroup
	for i, c := range s.checks {
		wg.Add(1)
		go func(i int, c Check) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			st := ComponentStatus{Name: c.Name, Up: true}
			if err := c.Probe(checkCtx); err != nil {
				st.Up = false
				st.Error = err.Error()
			}
			statuses[i] = st
		}(i, c)
	}
	wg.Wait()

	snap := HeartbeatSnapshot{Ready: true, CheckedAt: time.Now().UTC(), Components: statuses}
	for _, st := range statuses {
		metrics.SetHeartbeat(st.Name, st.Up)
		if !st.Up {
			snap.Ready = false
			s.logger.Warn().Str("component", st.Name).Str("error", st.Error).Msg("heartbeat check failed")
		}
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	return snap
}

// Snapshot returns the latest heartbeat result.
func (s *HeartbeatService) Snapshot() HeartbeatSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.Components = append([]ComponentStatus(nil), s.snapshot.Components...)
	return snap
}

func (s *HeartbeatService) String() string {
	return "heartbeat"
}

// PingCheck probes a database connection.
func PingCheck(name string, ping func(ctx context.Context) error) Check {
	return Check{Name: name, Probe: ping}
}

// ExecutableCheck verifies path exists, is a regular file and has an execute bit.
func ExecutableCheck(name, path string) Check {
	return Check{Name: name, Probe: func(context.Context) error {
		info, err := statFile(path)
		if err != nil {
			return err
		}
		if info.Mode().Perm()&0o111 == 0 {
			return fmt.Errorf("%s is not executable", path)
		}
		return nil
	}}
}

// FileCheck verifies path exists and is a regular file.
func FileCheck(name, path string) Check {
	return Check{Name: name, Probe: func(context.Context) error {
		_, err := statFile(path)
		return err
	}}
}

func statFile(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, errors.New("path not configured")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return info, nil
}
