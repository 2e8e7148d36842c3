// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/logging"
)

// configFile is the --config flag shared by all subcommands.
var configFile string

// NewRootCmd creates the root command. Without a subcommand it serves.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ideaboard",
		Short: "Ideaboard - project idea sharing board",
		Long: `Ideaboard serves a REST API for sharing project ideas, commenting
on them and voting, behind configurable Basic, Bearer and API token gates.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewHashPasswordCmd())

	return cmd
}

// loadConfig reads configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("path", configFile).Wrap(err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	return cfg, nil
}
