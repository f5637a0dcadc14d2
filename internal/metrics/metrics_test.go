// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		err       error
		errorType string
	}{
		{"success", "stars_success", nil, ""},
		{"timeout", "stars_timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", "stars_canceled", context.Canceled, "canceled"},
		{"generic", "stars_generic", errors.New("connection refused"), "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, "Stars", 10*time.Millisecond, tt.err)

			if tt.err == nil {
				return
			}
			got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, "Stars", tt.errorType))
			if got != 1 {
				t.Errorf("Expected 1 error of type %s, got %v", tt.errorType, got)
			}
		})
	}
}

func TestRecordProcess(t *testing.T) {
	before := testutil.ToFloat64(ProcessInvocations.WithLabelValues("test-engine", "exit_error"))
	RecordProcess("test-engine", "exit_error", 2*time.Second)
	after := testutil.ToFloat64(ProcessInvocations.WithLabelValues("test-engine", "exit_error"))

	if after-before != 1 {
		t.Errorf("Expected invocation counter to increase by 1, got %v", after-before)
	}
}

func TestRecordLayerDecision(t *testing.T) {
	before := testutil.ToFloat64(LayerDecisions.WithLabelValues("test-l2", "fallback"))
	RecordLayerDecision("test-l2", "fallback")
	RecordLayerDecision("test-l2", "fallback")
	after := testutil.ToFloat64(LayerDecisions.WithLabelValues("test-l2", "fallback"))

	if after-before != 2 {
		t.Errorf("Expected 2 fallback decisions, got %v", after-before)
	}
}

func TestSetHeartbeat(t *testing.T) {
	SetHeartbeat("test-db", true)
	if got := testutil.ToFloat64(HeartbeatUp.WithLabelValues("test-db")); got != 1 {
		t.Errorf("Expected heartbeat 1, got %v", got)
	}
	SetHeartbeat("test-db", false)
	if got := testutil.ToFloat64(HeartbeatUp.WithLabelValues("test-db")); got != 0 {
		t.Errorf("Expected heartbeat 0, got %v", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("Expected %v active requests, got %v", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("Expected %v active requests, got %v", before, got)
	}
}
