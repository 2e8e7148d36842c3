// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/models"
)

// APITokenAuthenticator admits requests presenting the configured static
// token as "<scheme> <token>". Any scheme is accepted.
type APITokenAuthenticator struct {
	token []byte
}

// NewAPITokenAuthenticator creates an API token authenticator.
func NewAPITokenAuthenticator(token string) *APITokenAuthenticator {
	return &APITokenAuthenticator{token: []byte(token)}
}

// Authenticate compares the presented token in constant time.
func (a *APITokenAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, &Rejection{Kind: KindMissingCredential, Code: models.ErrCodeUnauthorized, Message: MsgUnauthorized}
	}

	_, presented, found := strings.Cut(header, " ")
	presented = strings.TrimSpace(presented)
	if !found || presented == "" {
		return nil, reject(KindMalformedCredential, errors.New("api token must be sent as '<scheme> <token>'"))
	}
	if len(a.token) == 0 || subtle.ConstantTimeCompare([]byte(presented), a.token) != 1 {
		return nil, reject(KindInvalidCredential, errors.New("api token mismatch"))
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, reject(KindCanceled, ctx.Err())
	}

	return &Identity{Gate: a.Name()}, nil
}

// Name returns the gate name.
func (a *APITokenAuthenticator) Name() string {
	return config.GateAPIToken
}
