// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package compute

import (
	"bytes"
	"regexp"
	"strconv"
)

// rowsProcessedPattern matches the progress line printed by the signal scripts.
var rowsProcessedPattern = regexp.MustCompile(`TOTAL_ROWS_PROCESSED:\s*(\d+)`)

// Result returns the bytes after the last occurrence of marker, with
// surrounding whitespace trimmed. It returns ErrFraming when the marker is
// absent or nothing follows it.
func (o *Output) Result(marker string) ([]byte, error) {
	idx := bytes.LastIndex(o.Stdout, []byte(marker))
	if idx < 0 {
		return nil, ErrFraming
	}
	doc := bytes.TrimSpace(o.Stdout[idx+len(marker):])
	if len(doc) == 0 {
		return nil, ErrFraming
	}
	return doc, nil
}

// RowsProcessed extracts the last reported row count from stdout, or 0.
func (o *Output) RowsProcessed() int {
	matches := rowsProcessedPattern.FindAllSubmatch(o.Stdout, -1)
	if len(matches) == 0 {
		return 0
	}
	n, err := strconv.Atoi(string(matches[len(matches)-1][1]))
	if err != nil {
		return 0
	}
	return n
}
