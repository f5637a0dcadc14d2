// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/skyguide/internal/compute"
	"github.com/tomtom215/skyguide/internal/database"
	"github.com/tomtom215/skyguide/internal/explorer"
	"github.com/tomtom215/skyguide/internal/recommend"
)

// API error codes.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeRateLimited         = "RATE_LIMITED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamTimeout     = "UPSTREAM_TIMEOUT"
	CodeEngineFailure       = "ENGINE_FAILURE"
	CodeResultDecode        = "RESULT_DECODE_ERROR"
	CodeDatabase            = "DATABASE_ERROR"
	CodeCanceled            = "REQUEST_CANCELED"
	CodeInternal            = "INTERNAL_ERROR"
)

// statusClientClosedRequest is nginx's convention for a caller that went away.
const statusClientClosedRequest = 499

// errorFor maps a run or probe error to its HTTP status and API error.
// With diagnostics the underlying cause is attached as details.
func errorFor(err error, diagnostics bool) (int, *APIError) {
	var (
		engineErr *recommend.EngineFailureError
		exitErr   *compute.ExitError
		status    int
		apiErr    *APIError
	)

	switch {
	case errors.Is(err, recommend.ErrUnauthorized):
		status, apiErr = http.StatusUnauthorized, &APIError{Code: CodeUnauthorized, Message: "Authentication required."}
	case errors.Is(err, explorer.ErrNotFound):
		status, apiErr = http.StatusNotFound, &APIError{Code: CodeNotFound, Message: "Explorer not found."}
	case errors.Is(err, recommend.ErrUpstreamUnavailable), errors.Is(err, compute.ErrSpawn):
		status, apiErr = http.StatusServiceUnavailable, &APIError{Code: CodeUpstreamUnavailable, Message: "A compute process is unavailable."}
	case errors.Is(err, recommend.ErrUpstreamTimeout), errors.Is(err, compute.ErrTimeout):
		status, apiErr = http.StatusGatewayTimeout, &APIError{Code: CodeUpstreamTimeout, Message: "A compute process timed out."}
	case errors.As(err, &engineErr):
		status, apiErr = http.StatusBadGateway, &APIError{Code: CodeEngineFailure, Message: failureMessage(engineErr.Program)}
		if diagnostics {
			apiErr.Details = map[string]interface{}{
				"program":   engineErr.Program,
				"exit_code": engineErr.ExitCode,
				"stderr":    engineErr.Stderr,
			}
		}
		return status, apiErr
	case errors.As(err, &exitErr):
		status, apiErr = http.StatusBadGateway, &APIError{Code: CodeEngineFailure, Message: failureMessage(exitErr.Program)}
		if diagnostics {
			apiErr.Details = map[string]interface{}{
				"program":   exitErr.Program,
				"exit_code": exitErr.Code,
				"stderr":    exitErr.Stderr,
			}
		}
		return status, apiErr
	case errors.Is(err, recommend.ErrResultDecode), errors.Is(err, compute.ErrFraming), errors.Is(err, compute.ErrDecode):
		status, apiErr = http.StatusBadGateway, &APIError{Code: CodeResultDecode, Message: "A compute process returned an unreadable result."}
	case errors.Is(err, database.ErrQuery):
		status, apiErr = http.StatusInternalServerError, &APIError{Code: CodeDatabase, Message: "Failed to read recommendation data."}
	case errors.Is(err, context.Canceled):
		status, apiErr = statusClientClosedRequest, &APIError{Code: CodeCanceled, Message: "Request canceled."}
	default:
		status, apiErr = http.StatusInternalServerError, &APIError{Code: CodeInternal, Message: "Internal server error."}
	}

	if diagnostics && status != http.StatusUnauthorized {
		apiErr.Details = map[string]interface{}{"cause": err.Error()}
	}
	return status, apiErr
}

// failureMessage names the process that exited abnormally: "engine" or a
// layer script such as "layer_l2".
func failureMessage(program string) string {
	if program == "" {
		return "A compute process failed."
	}
	return fmt.Sprintf("Compute process %s failed.", program)
}
