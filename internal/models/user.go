// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package models

import "time"

// User is the public view of an account.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// Credential is the stored login record. It is only ever read by the auth
// core and must not be encoded.
type Credential struct {
	ID           int64  `json:"-"`
	Email        string `json:"-"`
	FirstName    string `json:"-"`
	LastName     string `json:"-"`
	Nickname     string `json:"-"`
	PasswordHash string `json:"-"`
}

// NewUser is the registration payload.
type NewUser struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Nickname  string `json:"nickname" validate:"required,max=100"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	AuthToken string `json:"authToken"`
}

// UserPatch updates profile fields. Email and password are not patchable.
type UserPatch struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Nickname  *string `json:"nickname,omitempty" validate:"omitempty,min=1,max=100"`
}

// Empty reports whether the patch changes nothing.
func (p *UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Nickname == nil
}
