// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

/*
Package api provides the HTTP surface of Ideaboard using the Chi router.

# Routes

	GET    /api/health
	GET    /metrics
	POST   /api/auth/login
	POST   /api/users                      registration
	GET    /api/users[/{id}]               users_read
	PATCH  /api/users/{id}                 users_write, self only
	DELETE /api/users/{id}                 users_write, self only
	GET    /api/ideas[/{id}]               ideas_read
	POST   /api/ideas                      ideas_write
	PATCH  /api/ideas/{id}                 ideas_write, author only
	DELETE /api/ideas/{id}                 ideas_write, author only
	GET    /api/comments[/{id}]            comments_read
	POST   /api/comments                   comments_write
	PATCH  /api/comments/{id}              comments_write, author only
	DELETE /api/comments/{id}              comments_write, author only
	*      /api/idea/vote[/{id}]           votes
	*      /api/comment/vote[/{id}]        votes

The gate protecting each family (users_read, ideas_write, ...) is read from
security.routes and resolved through auth.Gates when the router is built.

# Responses

Successful responses are plain JSON resources. Every error uses the
envelope written by auth.WriteError:

	{"error":{"code":"NOT_FOUND","message":"Idea doesn't exist"}}

User-supplied text is sanitized with bluemonday's UGC policy before it is
encoded. Ownership fields (author, user_id, vote_by_user) always come from
the authenticated identity, never from the request body.
*/
package api
