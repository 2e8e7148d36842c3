// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ideaboard/internal/database"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending schema migrations to the configured database and exit.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Connecting to database...")
	// database.New applies pending migrations before returning.
	db, err := database.New(&cfg.Database)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("driver", cfg.Database.Driver).Wrap(err)
	}
	if err := db.Close(); err != nil {
		return oops.Code("DB_CLOSE_FAILED").Wrap(err)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
