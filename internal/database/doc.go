// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

// Package database is the persistence layer for users, ideas, comments and
// votes.
//
// # Drivers
//
// Two database/sql drivers are supported and selected by config:
//   - duckdb (github.com/duckdb/duckdb-go/v2): embedded, the default for
//     development and tests (":memory:" is accepted)
//   - pgx (github.com/jackc/pgx/v5/stdlib): PostgreSQL for production
//
// All SQL is written to run unchanged on both: $N placeholders, sequences
// with nextval, RETURNING, and no foreign keys. Deleting a parent removes its
// dependent rows explicitly inside one transaction.
//
// # Files
//
//   - database.go: lifecycle, context timeouts, transactions
//   - migrations.go: versioned schema tracked in schema_migrations
//   - users.go, ideas.go, comments.go, votes.go: per-table access
//   - errors.go: sentinel errors and driver error classification
//
// Partial updates are assembled with Masterminds/squirrel.
//
// # Errors
//
//   - ErrNotFound: the row does not exist
//   - ErrDuplicateEmail: users.email unique violation (either driver)
//   - ErrReferenceNotFound: an insert references a missing idea or comment
package database
