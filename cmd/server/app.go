// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package main

import (
	"net/http"

	"github.com/samber/oops"

	"github.com/tomtom215/ideaboard/internal/api"
	"github.com/tomtom215/ideaboard/internal/auth"
	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/database"
	"github.com/tomtom215/ideaboard/internal/logging"
)

// buildHandler wires the auth core, gates and API handlers over db.
func buildHandler(cfg *config.Config, db *database.DB, hasher *auth.BcryptHasher) (http.Handler, error) {
	tokens, err := auth.NewTokenManagerFromConfig(&cfg.Security)
	if err != nil {
		return nil, oops.Code("TOKEN_CONFIG_INVALID").Wrap(err)
	}
	security := logging.NewSecurityLogger()

	authenticators := []auth.Authenticator{
		auth.NewBasicAuthenticator(db, hasher, security),
		auth.NewBearerAuthenticator(tokens, db),
	}
	if cfg.Security.APIToken != "" {
		authenticators = append(authenticators, auth.NewAPITokenAuthenticator(cfg.Security.APIToken))
	}
	gates := auth.NewGates(auth.GateOptions{
		VerboseErrors: cfg.VerboseErrors(),
		Security:      security,
	}, authenticators...)

	service := auth.NewService(db, hasher, tokens, security)
	handler, err := api.NewRouter(api.NewHandler(db, service, cfg), gates, cfg).SetupChi()
	if err != nil {
		return nil, oops.Code("ROUTES_INVALID").Wrap(err)
	}

	if cfg.VerboseErrors() {
		logging.Warn().Msg("Verbose errors enabled: internal error text is returned to clients")
	}
	logging.Info().
		Str("users_read", cfg.Security.Routes.UsersRead).
		Str("users_write", cfg.Security.Routes.UsersWrite).
		Str("ideas_read", cfg.Security.Routes.IdeasRead).
		Str("ideas_write", cfg.Security.Routes.IdeasWrite).
		Str("comments_read", cfg.Security.Routes.CommentsRead).
		Str("comments_write", cfg.Security.Routes.CommentsWrite).
		Str("votes", cfg.Security.Routes.Votes).
		Msg("Route gates configured")

	return handler, nil
}
