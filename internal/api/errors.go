// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

// Client-facing error messages. Auth gate messages live in package auth.
const (
	msgInvalidJSON      = "Invalid JSON body"
	msgInvalidID        = "Invalid id"
	msgForbidden        = "Forbidden"
	msgEmptyPatch       = "Request body must contain at least one field"
	msgMissingVote      = "Request body must contain 'vote'"
	msgServerError      = "server error"
	msgBodyTooLarge     = "Request body too large"
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
)

// errCodeMethodNotAllowed is the envelope code for 405 responses.
const errCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
