// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package database

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrQuery matches every *QueryError.
	ErrQuery = errors.New("database query failed")

	// ErrNotFound is returned by single-row lookups when no row matches.
	ErrNotFound = errors.New("record not found")
)

// QueryError reports a failed gateway read.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrQuery and the driver error.
func (e *QueryError) Unwrap() []error {
	return []error{ErrQuery, e.Err}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in paths where a Close() error is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
