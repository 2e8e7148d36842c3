// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

/*
Package auth is the authentication core of Ideaboard.

# Components

  - BcryptHasher: bcrypt password hashing at cost 12
  - ValidateEmail / ValidatePassword: registration-time credential policy
  - TokenManager: HS256 token issue and verification with a fixed ttl
  - BasicAuthenticator, BearerAuthenticator, APITokenAuthenticator: gates
  - Gate / Gates: chi middleware that runs an authenticator per route
  - Service: login and registration flows

# Gates

Every gate implements Authenticator and reports failures as *Rejection.
Gate turns a rejection into the shared error envelope:

	401 {"error":{"code":"MISSING_CREDENTIALS","message":"Missing basic token"}}
	401 {"error":{"code":"UNAUTHORIZED","message":"Unauthorized request"}}

An unknown account, a wrong password, a bad signature and an expired token
all produce the second body byte for byte. Store failures do too, unless
verbose errors are enabled outside production. A request canceled during
authentication gets no response body and no identity.

Which gate protects which route family is read from security.routes in the
configuration:

	gates := auth.NewGates(opts, basic, bearer, apiToken)
	mw, err := gates.For(cfg.Security.Routes.IdeasWrite)
	r.With(mw).Post("/api/ideas", h.CreateIdea)

# Security

Plaintext passwords are never logged, stored or returned. Emails are
lowercased before lookup and storage. The token secret is loaded once at
startup; rotating it invalidates every outstanding token.
*/
package auth
