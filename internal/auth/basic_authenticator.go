// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/ideaboard/internal/config"
	"github.com/tomtom215/ideaboard/internal/logging"
)

// BasicAuthenticator checks an email and password sent with HTTP Basic
// authentication against the stored bcrypt hash. It does one store lookup
// per request and caches nothing.
type BasicAuthenticator struct {
	store    CredentialStore
	hasher   PasswordHasher
	security *logging.SecurityLogger
	decoy    string
}

// NewBasicAuthenticator creates a Basic authenticator.
func NewBasicAuthenticator(store CredentialStore, hasher PasswordHasher, security *logging.SecurityLogger) *BasicAuthenticator {
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	return &BasicAuthenticator{
		store:    store,
		hasher:   hasher,
		security: security,
		decoy:    decoyHash(hasher),
	}
}

// Authenticate extracts and validates Basic credentials from the request.
func (a *BasicAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	payload, ok := credentialAfterScheme(r.Header.Get("Authorization"), "Basic")
	if !ok {
		return nil, missing(MsgMissingBasic)
	}

	email, password, err := decodeBasic(payload)
	if err != nil {
		return nil, reject(KindMalformedCredential, err)
	}

	cred, err := lookupCredential(ctx, a.store, strings.ToLower(email))
	if err != nil {
		if rej, ok := AsRejection(err); ok && rej.Kind == KindInvalidCredential {
			verifyDecoy(a.hasher, a.decoy, password)
		}
		return nil, err
	}

	match, err := a.hasher.Verify(password, cred.PasswordHash)
	if err != nil {
		a.security.LogIntegrityFailure(ctx, a.Name(), cred.Email, err)
		return nil, reject(KindIntegrityFailure, err)
	}
	if !match {
		return nil, reject(KindInvalidCredential, errors.New("password mismatch"))
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, reject(KindCanceled, ctx.Err())
	}

	return identityFromCredential(cred, a.Name()), nil
}

// Name returns the gate name.
func (a *BasicAuthenticator) Name() string {
	return config.GateBasic
}

// Challenge returns the WWW-Authenticate header value.
func (a *BasicAuthenticator) Challenge() string {
	return `Basic realm="ideaboard", charset="UTF-8"`
}

// credentialAfterScheme returns what follows "<scheme> " in header. The
// scheme is matched case-insensitively.
func credentialAfterScheme(header, scheme string) (string, bool) {
	prefix, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(prefix, scheme) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func decodeBasic(payload string) (email, password string, err error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", errors.New("invalid base64 in basic credentials")
	}
	email, password, found := strings.Cut(string(raw), ":")
	if !found || email == "" || password == "" {
		return "", "", errors.New("basic credentials must be email:password")
	}
	return email, password, nil
}
