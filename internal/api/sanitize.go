// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import "github.com/tomtom215/ideaboard/internal/models"

// User-supplied text is passed through the UGC policy on the way out.
// Emails are returned as stored: they already match the address pattern and
// the policy would entity-encode the ' and & it allows.

func (h *Handler) cleanUser(u models.User) models.User {
	u.FirstName = h.sanitizer.Sanitize(u.FirstName)
	u.LastName = h.sanitizer.Sanitize(u.LastName)
	u.Nickname = h.sanitizer.Sanitize(u.Nickname)
	return u
}

func (h *Handler) cleanIdea(i models.Idea) models.Idea {
	i.ProjectTitle = h.sanitizer.Sanitize(i.ProjectTitle)
	i.ProjectSummary = h.sanitizer.Sanitize(i.ProjectSummary)
	i.Status = h.sanitizer.Sanitize(i.Status)
	i.Github = h.sanitizer.Sanitize(i.Github)
	return i
}

func (h *Handler) cleanComment(c models.Comment) models.Comment {
	c.CommentText = h.sanitizer.Sanitize(c.CommentText)
	return c
}

func cleanSlice[T any](items []T, clean func(T) T) []T {
	out := make([]T, len(items))
	for i := range items {
		out[i] = clean(items[i])
	}
	return out
}

// voteView shapes a vote for its kind: {"idea": n} or {"comment": n}.
func voteView(kind models.VoteKind, v *models.Vote) any {
	if kind == models.VoteOnComment {
		return models.CommentVote{ID: v.ID, Vote: v.Vote, Comment: v.Target, VoteByUser: v.VoteByUser}
	}
	return models.IdeaVote{ID: v.ID, Vote: v.Vote, Idea: v.Target, VoteByUser: v.VoteByUser}
}
