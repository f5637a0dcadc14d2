// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package layers

// Source says where a layer result comes from.
type Source string

const (
	SourceFallback Source = "fallback"
	SourceCompute  Source = "compute"
)

// Decision is the outcome of the row-count gate.
type Decision struct {
	Source   Source
	Observed int
	Required int
}

// Decide returns SourceCompute iff observed >= minimum.
func Decide(observed, minimum int) Decision {
	d := Decision{Source: SourceFallback, Observed: observed, Required: minimum}
	if observed >= minimum {
		d.Source = SourceCompute
	}
	return d
}
