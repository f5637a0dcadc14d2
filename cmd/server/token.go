// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/skyguide/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT for an explorer",
	Long: `Sign a token with the configured JWT secret. Useful for exercising the
API locally without an identity provider.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cmd.Flags().GetInt64("user-id")
		if err != nil {
			return err
		}
		username, _ := cmd.Flags().GetString("username")
		role, _ := cmd.Flags().GetString("role")

		if userID <= 0 {
			return fmt.Errorf("--user-id must be positive")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		manager, err := auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return err
		}

		if role == "" {
			role = cfg.Security.Casbin.DefaultRole
		}
		token, err := manager.GenerateToken(userID, username, role)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Int64("user-id", 0, "Explorer id placed in the token")
	tokenCmd.Flags().String("username", "", "Display name placed in the token")
	tokenCmd.Flags().String("role", "", "Authorization role (defaults to the configured default role)")
	_ = tokenCmd.MarkFlagRequired("user-id")
}
