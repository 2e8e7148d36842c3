// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

// Package models defines the data types shared between the store, the auth
// core and the HTTP layer.
//
// Request payloads carry `validate` tags checked by internal/validation.
// Patch types use pointer fields so that an absent field is distinguishable
// from a zero value.
//
// User never carries a password. The stored hash lives only in Credential,
// which is excluded from JSON encoding entirely.
package models
