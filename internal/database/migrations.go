// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/ideaboard/internal/logging"
)

// Migration represents a versioned database migration.
type Migration struct {
	Version     int       // Unique version number (monotonically increasing)
	Name        string    // Human-readable migration name
	Description string    // What this migration does
	SQL         string    // Statements to execute, separated by ';'
	AppliedAt   time.Time // Populated on query
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
)`

// migrations are append-only. The SQL must run unchanged on DuckDB and
// PostgreSQL, so there are no foreign keys: dependent rows are removed in
// the same transaction as their parent.
var migrations = []Migration{
	{
		Version:     1,
		Name:        "create_users",
		Description: "Users with unique lowercased email",
		SQL: `
CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1;
CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	nickname TEXT NOT NULL,
	date_created TIMESTAMP NOT NULL DEFAULT current_timestamp,
	date_modified TIMESTAMP NOT NULL DEFAULT current_timestamp
)`,
	},
	{
		Version:     2,
		Name:        "create_ideas",
		Description: "Project ideas owned by an author",
		SQL: `
CREATE SEQUENCE IF NOT EXISTS ideas_id_seq START 1;
CREATE TABLE IF NOT EXISTS ideas (
	id BIGINT PRIMARY KEY DEFAULT nextval('ideas_id_seq'),
	project_title TEXT NOT NULL,
	project_summary TEXT NOT NULL,
	date_submitted TIMESTAMP NOT NULL DEFAULT current_timestamp,
	status TEXT NOT NULL DEFAULT 'Idea',
	github TEXT NOT NULL DEFAULT '',
	author BIGINT NOT NULL
)`,
	},
	{
		Version:     3,
		Name:        "create_comments",
		Description: "Comments on ideas",
		SQL: `
CREATE SEQUENCE IF NOT EXISTS comments_id_seq START 1;
CREATE TABLE IF NOT EXISTS comments (
	id BIGINT PRIMARY KEY DEFAULT nextval('comments_id_seq'),
	user_id BIGINT NOT NULL,
	project_id BIGINT NOT NULL,
	comment_text TEXT NOT NULL,
	date_submitted TIMESTAMP NOT NULL DEFAULT current_timestamp
)`,
	},
	{
		Version:     4,
		Name:        "create_votes",
		Description: "Votes on ideas and comments",
		SQL: `
CREATE SEQUENCE IF NOT EXISTS idea_vote_id_seq START 1;
CREATE TABLE IF NOT EXISTS idea_vote (
	id BIGINT PRIMARY KEY DEFAULT nextval('idea_vote_id_seq'),
	vote INTEGER NOT NULL,
	idea BIGINT NOT NULL,
	vote_by_user BIGINT NOT NULL
);
CREATE SEQUENCE IF NOT EXISTS comment_vote_id_seq START 1;
CREATE TABLE IF NOT EXISTS comment_vote (
	id BIGINT PRIMARY KEY DEFAULT nextval('comment_vote_id_seq'),
	vote INTEGER NOT NULL,
	comment BIGINT NOT NULL,
	vote_by_user BIGINT NOT NULL
)`,
	},
	{
		Version:     5,
		Name:        "index_foreign_columns",
		Description: "Lookup indexes for ownership and vote sums",
		SQL: `
CREATE INDEX IF NOT EXISTS idx_ideas_author ON ideas(author);
CREATE INDEX IF NOT EXISTS idx_comments_project ON comments(project_id);
CREATE INDEX IF NOT EXISTS idx_idea_vote_idea ON idea_vote(idea);
CREATE INDEX IF NOT EXISTS idx_comment_vote_comment ON comment_vote(comment)`,
	},
}

// Migrations returns the ordered migration list.
func Migrations() []Migration {
	out := make([]Migration, len(migrations))
	copy(out, migrations)
	return out
}

// Migrate applies migrations that have not run yet, each exactly once.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		for _, stmt := range splitStatements(m.SQL) {
			if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
			}
		}
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description) VALUES ($1, $2, $3)`,
			m.Version, m.Name, m.Description); err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// CurrentSchemaVersion returns the highest applied migration version.
func (db *DB) CurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// MigrationHistory returns all applied migrations in order.
func (db *DB) MigrationHistory(ctx context.Context) ([]Migration, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT version, name, COALESCE(description, ''), applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	defer rows.Close()

	var history []Migration
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		history = append(history, m)
	}
	return history, rows.Err()
}

func splitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
