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

func voteSelect(kind models.VoteKind) string {
	return `SELECT id, vote, ` + kind.TargetColumn() + `, vote_by_user FROM ` + kind.Table()
}

func targetTable(kind models.VoteKind) string {
	if kind == models.VoteOnComment {
		return "comments"
	}
	return "ideas"
}

func scanVote(row rowScanner) (*models.Vote, error) {
	var v models.Vote
	if err := row.Scan(&v.ID, &v.Vote, &v.Target, &v.VoteByUser); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVotes returns all votes of kind ordered by id.
func (db *DB) ListVotes(ctx context.Context, kind models.VoteKind) ([]models.Vote, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, voteSelect(kind)+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind.Table(), err)
	}
	defer rows.Close()

	votes := make([]models.Vote, 0)
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, *v)
	}
	return votes, rows.Err()
}

// GetVote returns the vote of kind with id.
func (db *DB) GetVote(ctx context.Context, kind models.VoteKind, id int64) (*models.Vote, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	v, err := scanVote(db.conn.QueryRowContext(ctx, voteSelect(kind)+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	return v, nil
}

// CreateVote records a vote by userID on target. The target must exist.
func (db *DB) CreateVote(ctx context.Context, kind models.VoteKind, userID, target int64, value int) (*models.Vote, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var v *models.Vote
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, targetTable(kind), target)
		if err != nil {
			return fmt.Errorf("failed to check vote target: %w", err)
		}
		if !ok {
			return ErrReferenceNotFound
		}
		row := tx.QueryRowContext(ctx,
			`INSERT INTO `+kind.Table()+` (vote, `+kind.TargetColumn()+`, vote_by_user) VALUES ($1, $2, $3)
			 RETURNING id, vote, `+kind.TargetColumn()+`, vote_by_user`,
			value, target, userID)
		if v, err = scanVote(row); err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateVote changes the vote value.
func (db *DB) UpdateVote(ctx context.Context, kind models.VoteKind, id int64, value int) (*models.Vote, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.updateByID(ctx, kind.Table(), id, map[string]any{"vote": value}); err != nil {
		return nil, err
	}
	return db.GetVote(ctx, kind, id)
}

// DeleteVote removes the vote.
func (db *DB) DeleteVote(ctx context.Context, kind models.VoteKind, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM `+kind.Table()+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
