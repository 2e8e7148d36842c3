// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/logging"
)

// TokenVerifier verifies a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// BearerAuthenticator accepts a signed token and resolves its subject to a
// stored account. It keeps no session state.
type BearerAuthenticator struct {
	tokens TokenVerifier
	store  CredentialStore
}

// NewBearerAuthenticator creates a Bearer authenticator.
func NewBearerAuthenticator(tokens TokenVerifier, store CredentialStore) *BearerAuthenticator {
	return &BearerAuthenticator{tokens: tokens, store: store}
}

// Authenticate validates the bearer token and loads its account.
func (a *BearerAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	token, ok := credentialAfterScheme(r.Header.Get("Authorization"), "Bearer")
	if !ok {
		return nil, missing(MsgMissingBearer)
	}
	if token == "" {
		return nil, reject(KindMalformedCredential, ErrTokenMalformed)
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("token", logging.SanitizeToken(token)).
			Msg("Bearer token rejected")
		return nil, reject(KindInvalidCredential, err)
	}

	cred, err := lookupCredential(ctx, a.store, strings.ToLower(claims.Subject))
	if err != nil {
		return nil, err
	}
	if claims.UserID != cred.ID {
		return nil, reject(KindInvalidCredential,
			fmt.Errorf("token user_id %d does not match account %d", claims.UserID, cred.ID))
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, reject(KindCanceled, ctx.Err())
	}

	id := identityFromCredential(cred, a.Name())
	id.Claims = claims
	return id, nil
}

// Name returns the gate name.
func (a *BearerAuthenticator) Name() string {
	return config.GateBearer
}

// Challenge returns the WWW-Authenticate header value.
func (a *BearerAuthenticator) Challenge() string {
	return `Bearer realm="ideaboard"`
}
