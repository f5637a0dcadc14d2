// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package recommend

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/skyguide/internal/compute"
)

var (
	// ErrUnauthorized is returned when the request carries no caller identity.
	ErrUnauthorized = errors.New("no authenticated explorer")

	// ErrUpstreamUnavailable is returned when a compute process (engine or
	// layer script) cannot be started, or the engine circuit is open.
	ErrUpstreamUnavailable = errors.New("compute process unavailable")

	// ErrUpstreamTimeout is returned when a compute process exceeded its deadline.
	ErrUpstreamTimeout = errors.New("compute process timed out")

	// ErrResultDecode is returned when a process ran but its output could not
	// be decoded.
	ErrResultDecode = errors.New("compute process returned malformed output")
)

// EngineFailureError reports a compute process that exited abnormally.
type EngineFailureError struct {
	Program  string
	ExitCode int
	Stderr   string
}

func (e *EngineFailureError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d", e.Program, e.ExitCode)
}

// classify maps compute and breaker errors onto the run's failure model.
// Other errors are returned unchanged.
func classify(err error) error {
	var exitErr *compute.ExitError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	case errors.Is(err, compute.ErrSpawn):
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	case errors.Is(err, compute.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
	case errors.As(err, &exitErr):
		return &EngineFailureError{Program: exitErr.Program, ExitCode: exitErr.Code, Stderr: exitErr.Stderr}
	case errors.Is(err, compute.ErrFraming), errors.Is(err, compute.ErrDecode):
		return fmt.Errorf("%w: %w", ErrResultDecode, err)
	}
	return err
}

// outcome is the metrics label for a run's result.
func outcome(err error) string {
	var failure *EngineFailureError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "unavailable"
	case errors.Is(err, ErrUpstreamTimeout):
		return "timeout"
	case errors.As(err, &failure):
		return "engine_failure"
	case errors.Is(err, ErrResultDecode):
		return "decode_error"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "error"
}
