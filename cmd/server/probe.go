// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/skyguide/internal/layers"
	"github.com/tomtom215/skyguide/internal/models"
)

var probeCmd = &cobra.Command{
	Use:   "probe <pool|user|l2|l3|l4>",
	Short: "Run one data provider and print its output",
	Long: `Run a single provider against the configured database and scripts and
print the result as JSON. The engine is not invoked.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pool", "user", layers.Trending, layers.Collaborative, layers.Neural},
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cmd.Flags().GetInt64("user-id")
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		comp, err := buildComponents(ctx, cfg)
		if err != nil {
			return err
		}
		defer comp.db.Close()

		out, err := runProbe(ctx, comp, args[0], userID)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	probeCmd.Flags().Int64("user-id", 1, "Explorer id for user and layer probes")
}

func runProbe(ctx context.Context, comp *components, target string, userID int64) (any, error) {
	switch target {
	case "pool":
		return comp.pool.Pool(ctx)
	case "user":
		return comp.users.Context(ctx, userID, models.Observation{})
	}

	layer := comp.layers.ByName(target)
	if layer == nil {
		return nil, fmt.Errorf("unknown probe target %q", target)
	}
	return layer.Invoke(ctx, layers.ForUser(userID))
}
