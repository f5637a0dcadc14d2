// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

/*
Package layers implements the optional signal layers that enrich a
recommendation run:

  - l2, trending: raw Like/Rate/View interactions
  - l3, collaborative: category signals, one selected row per explorer
  - l4, neural: category signals

Every layer follows the same path. Rows are extracted from the database,
Decide compares the row count to the layer's configured minimum, and the
result comes either from the layer's CSV artifact (too little data, nothing
is spawned) or from a fresh run of the layer script. Script failures are
returned to the caller; there is no silent fallback after a failed run.
*/
package layers
