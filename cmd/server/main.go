// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

// Package main is the entry point for the Ideaboard server.
//
// Ideaboard is a small board where users share project ideas, comment on
// them and vote. The binary serves the REST API by default:
//
//	ideaboard                    # same as "ideaboard serve"
//	ideaboard serve --config /etc/ideaboard/config.yaml
//	ideaboard migrate            # apply schema migrations and exit
//	echo -n 'S3cret!pw' | ideaboard hash-password
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (JWT_SECRET, API_TOKEN, DATABASE_URL, AUTH_IDEAS_WRITE, ...)
//   - Config file (--config, CONFIG_PATH, or config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
// accepting connections and waits up to server.shutdown_timeout for
// in-flight requests before the database is closed.
package main

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
