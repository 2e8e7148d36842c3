// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/ideaboard/internal/models"
)

// SUM over INTEGER is HUGEINT in DuckDB, so it is cast back to BIGINT.
const ideaSelect = `SELECT i.id, i.project_title, i.project_summary, i.date_submitted, i.status, i.github, i.author,
	CAST(COALESCE((SELECT SUM(v.vote) FROM idea_vote v WHERE v.idea = i.id), 0) AS BIGINT) AS votes
	FROM ideas i`

func scanIdea(row rowScanner) (*models.Idea, error) {
	var i models.Idea
	if err := row.Scan(&i.ID, &i.ProjectTitle, &i.ProjectSummary, &i.DateSubmitted, &i.Status, &i.Github, &i.Author, &i.Votes); err != nil {
		return nil, err
	}
	return &i, nil
}

// ListIdeas returns all ideas ordered by id.
func (db *DB) ListIdeas(ctx context.Context) ([]models.Idea, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, ideaSelect+` ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer rows.Close()

	ideas := make([]models.Idea, 0)
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, *i)
	}
	return ideas, rows.Err()
}

// GetIdea returns the idea with id.
func (db *DB) GetIdea(ctx context.Context, id int64) (*models.Idea, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	i, err := scanIdea(db.conn.QueryRowContext(ctx, ideaSelect+` WHERE i.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query idea: %w", err)
	}
	return i, nil
}

// CreateIdea inserts an idea owned by author.
func (db *DB) CreateIdea(ctx context.Context, author int64, in *models.NewIdea) (*models.Idea, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	status := in.Status
	if status == "" {
		status = models.DefaultIdeaStatus
	}

	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO ideas (project_title, project_summary, status, github, author)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		in.ProjectTitle, in.ProjectSummary, status, in.Github, author).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert idea: %w", err)
	}
	return db.GetIdea(ctx, id)
}

// UpdateIdea applies the non-nil fields of p.
func (db *DB) UpdateIdea(ctx context.Context, id int64, p *models.IdeaPatch) (*models.Idea, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	set := map[string]any{}
	if p.ProjectTitle != nil {
		set["project_title"] = *p.ProjectTitle
	}
	if p.ProjectSummary != nil {
		set["project_summary"] = *p.ProjectSummary
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Github != nil {
		set["github"] = *p.Github
	}
	if len(set) > 0 {
		if err := db.updateByID(ctx, "ideas", id, set); err != nil {
			return nil, err
		}
	}
	return db.GetIdea(ctx, id)
}

// DeleteIdea removes an idea with its comments and all related votes.
func (db *DB) DeleteIdea(ctx context.Context, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "ideas", id)
		if err != nil {
			return fmt.Errorf("failed to check idea: %w", err)
		}
		if !ok {
			return ErrNotFound
		}

		stmts := []string{
			`DELETE FROM comment_vote WHERE comment IN (SELECT id FROM comments WHERE project_id = $1)`,
			`DELETE FROM comments WHERE project_id = $1`,
			`DELETE FROM idea_vote WHERE idea = $1`,
			`DELETE FROM ideas WHERE id = $1`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete idea: %w", err)
			}
		}
		return nil
	})
}
