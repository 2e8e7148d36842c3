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
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/ideaboard/internal/models"
)

const userColumns = `id, first_name, last_name, email, nickname, date_created, date_modified`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Nickname, &u.DateCreated, &u.DateModified); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindCredentialByEmail returns the login record for email. The lookup is
// exact; callers lowercase the address first.
func (db *DB) FindCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var c models.Credential
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, first_name, last_name, nickname, password_hash FROM users WHERE email = $1`,
		email).Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Nickname, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}
	return &c, nil
}

// CreateUser inserts u with the given password hash and fills in the
// generated id and timestamps.
func (db *DB) CreateUser(ctx context.Context, u *models.User, passwordHash string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, nickname)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		u.FirstName, u.LastName, strings.ToLower(u.Email), passwordHash, u.Nickname)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	*u = *created
	return nil
}

// GetUser returns the user with id.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	u, err := scanUser(db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser applies the non-nil fields of p and returns the updated user.
func (db *DB) UpdateUser(ctx context.Context, id int64, p *models.UserPatch) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	set := map[string]any{}
	if p.FirstName != nil {
		set["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		set["last_name"] = *p.LastName
	}
	if p.Nickname != nil {
		set["nickname"] = *p.Nickname
	}
	if len(set) > 0 {
		set["date_modified"] = sq.Expr("current_timestamp")
		if err := db.updateByID(ctx, "users", id, set); err != nil {
			return nil, err
		}
	}
	return db.GetUser(ctx, id)
}

// DeleteUser removes a user together with their ideas, comments and votes.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "users", id)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !ok {
			return ErrNotFound
		}

		stmts := []string{
			`DELETE FROM comment_vote WHERE vote_by_user = $1`,
			`DELETE FROM comment_vote WHERE comment IN (SELECT id FROM comments WHERE user_id = $1)`,
			`DELETE FROM comment_vote WHERE comment IN (SELECT c.id FROM comments c JOIN ideas i ON c.project_id = i.id WHERE i.author = $1)`,
			`DELETE FROM idea_vote WHERE vote_by_user = $1`,
			`DELETE FROM idea_vote WHERE idea IN (SELECT id FROM ideas WHERE author = $1)`,
			`DELETE FROM comments WHERE user_id = $1`,
			`DELETE FROM comments WHERE project_id IN (SELECT id FROM ideas WHERE author = $1)`,
			`DELETE FROM ideas WHERE author = $1`,
			`DELETE FROM users WHERE id = $1`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}
		}
		return nil
	})
}

// updateByID builds `UPDATE table SET ... WHERE id = $n` from set.
func (db *DB) updateByID(ctx context.Context, table string, id int64, set map[string]any) error {
	stmt, args, err := db.builder.Update(table).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s sql: %w", table, err)
	}

	res, err := db.conn.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
