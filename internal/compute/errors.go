// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package compute

import (
	"errors"
	"fmt"
)

var (
	// ErrSpawn is returned when the program could not be started.
	ErrSpawn = errors.New("failed to start process")

	// ErrTimeout is returned when the per-invocation deadline expired and
	// the child was killed.
	ErrTimeout = errors.New("process timed out")

	// ErrExit matches every *ExitError.
	ErrExit = errors.New("process exited with non-zero status")

	// ErrFraming is returned when stdout does not contain the result marker.
	ErrFraming = errors.New("result marker not found in output")

	// ErrDecode is returned when the framed result is not valid JSON for the
	// requested type.
	ErrDecode = errors.New("failed to decode process result")
)

// maxStderrTail bounds how much stderr is kept on an ExitError.
const maxStderrTail = 4096

// ExitError reports a child that ran to completion with a non-zero status.
type ExitError struct {
	Program string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Program, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Program, e.Code, e.Stderr)
}

func (e *ExitError) Unwrap() error {
	return ErrExit
}

// tail returns the last n bytes of b as a string.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
