// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package query builds parameterized SQL fragments for the gateway.
// Placeholders are always "?", which both supported drivers accept.
package query
