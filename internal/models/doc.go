// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package models defines the data shapes exchanged between the gateway, the
// signal layers, the recommendation engine process and HTTP clients.
//
// JSON field names follow the column aliases of the catalog schema
// (Id, RA_ICRS, Interaction_ID, ...) because the external engine and the
// layer scripts consume these payloads verbatim.
package models
