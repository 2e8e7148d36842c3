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

const commentSelect = `SELECT c.id, c.user_id, c.project_id, c.comment_text, c.date_submitted,
	CAST(COALESCE((SELECT SUM(v.vote) FROM comment_vote v WHERE v.comment = c.id), 0) AS BIGINT) AS votes
	FROM comments c`

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.UserID, &c.ProjectID, &c.CommentText, &c.DateSubmitted, &c.Votes); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComments returns all comments ordered by id.
func (db *DB) ListComments(ctx context.Context) ([]models.Comment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, commentSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// GetComment returns the comment with id.
func (db *DB) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	c, err := scanComment(db.conn.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}
	return c, nil
}

// CreateComment inserts a comment by userID. The referenced idea must exist.
func (db *DB) CreateComment(ctx context.Context, userID int64, in *models.NewComment) (*models.Comment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var id int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "ideas", in.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to check idea: %w", err)
		}
		if !ok {
			return ErrReferenceNotFound
		}
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO comments (user_id, project_id, comment_text) VALUES ($1, $2, $3) RETURNING id`,
			userID, in.ProjectID, in.CommentText).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db.GetComment(ctx, id)
}

// UpdateComment applies the non-nil fields of p.
func (db *DB) UpdateComment(ctx context.Context, id int64, p *models.CommentPatch) (*models.Comment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if p.CommentText != nil {
		if err := db.updateByID(ctx, "comments", id, map[string]any{"comment_text": *p.CommentText}); err != nil {
			return nil, err
		}
	}
	return db.GetComment(ctx, id)
}

// DeleteComment removes a comment and its votes.
func (db *DB) DeleteComment(ctx context.Context, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "comments", id)
		if err != nil {
			return fmt.Errorf("failed to check comment: %w", err)
		}
		if !ok {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM comment_vote WHERE comment = $1`, id); err != nil {
			return fmt.Errorf("failed to delete comment votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	})
}
