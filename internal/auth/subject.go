// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"context"
	"net/http"

	"github.com/tomtom215/ideaboard/internal/database"
	"github.com/tomtom215/ideaboard/internal/models"
)

// Client-facing gate messages.
const (
	MsgMissingBasic  = "Missing basic token"
	MsgMissingBearer = "Missing bearer token"
	MsgUnauthorized  = "Unauthorized request"
)

// ErrCredentialNotFound is returned by a CredentialStore for an unknown email.
var ErrCredentialNotFound = database.ErrNotFound

// CredentialStore is the only store capability the gates need.
type CredentialStore interface {
	FindCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
}

// Authenticator validates the credential carried by a request.
// Failures are returned as *Rejection.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*Identity, error)

	// Name is the gate name used in configuration, logs and metrics.
	Name() string
}

// Challenger is implemented by authenticators that advertise a
// WWW-Authenticate challenge on 401.
type Challenger interface {
	Challenge() string
}

// Identity is the caller attached to a request by a gate. The apitoken gate
// produces an anonymous identity with only Gate set.
type Identity struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Nickname  string
	Gate      string
	Claims    *Claims
}

// Anonymous reports whether the identity names no user.
func (id *Identity) Anonymous() bool {
	return id == nil || id.ID == 0
}

func identityFromCredential(cred *models.Credential, gate string) *Identity {
	return &Identity{
		ID:        cred.ID,
		Email:     cred.Email,
		FirstName: cred.FirstName,
		LastName:  cred.LastName,
		Nickname:  cred.Nickname,
		Gate:      gate,
	}
}

type identityKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the attached identity, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
