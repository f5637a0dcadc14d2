// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package database is the read gateway to the catalog and interaction store.
//
// Two drivers are supported through database/sql:
//
//   - duckdb: an embedded file (or ":memory:"), schema created on start and
//     optionally seeded with a small demo catalog
//   - mysql: an existing server holding the production schema
//
// Every read goes through queryAll, which bounds it with the configured
// query timeout, records Prometheus metrics and wraps any failure in a
// *QueryError so that callers can classify it with errors.Is(err, ErrQuery).
// A single *DB is built in main and shared; database/sql provides the
// bounded connection pool.
package database
