// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package main is the entry point for the Skyguide server.
//
// Skyguide turns an observer's location, time and history into a ranked list
// of stars, planets and moons. Each run gathers a celestial pool and the
// observer's context from the catalog database, optionally collects signal
// layers (trending, collaborative, neural), hands everything to the native
// recommendation engine and flattens its output for clients.
//
// # Commands
//
//	skyguide serve              # run the HTTP API under the supervisor tree
//	skyguide token --user-id 1  # mint a JWT for local testing
//	skyguide probe l2           # run one provider and print its output
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (a .env file in the working directory is read first)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// serve shuts down gracefully on SIGINT and SIGTERM. In-flight requests get
// the configured shutdown timeout, running engine processes are killed when
// their request context ends.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Build information, injected via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "skyguide",
	Short: "Skyguide - personalized night sky recommendations",
	Long: `Skyguide orchestrates the catalog database, the signal layer scripts and
the native recommendation engine behind a small authenticated HTTP API.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("skyguide version %s (commit: %s, built: %s)\n", Version, Commit, BuildTime))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(probeCmd)
}

func main() {
	// Missing .env is normal outside development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
