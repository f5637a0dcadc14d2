// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package middleware

import (
	"compress/gzip"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// compressibleTypes are the response types worth compressing. Recommendation
// lists are large, repetitive JSON.
var compressibleTypes = []string{"application/json", "text/plain"}

// compressor is shared so the encoder pools are shared across routes.
var compressor = chimw.NewCompressor(gzip.DefaultCompression, compressibleTypes...)

// Compression gzips JSON responses for clients that accept it.
func Compression(next http.Handler) http.Handler {
	return compressor.Handler(next)
}
