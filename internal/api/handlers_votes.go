// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/ideaboard/internal/database"
	"github.com/tomtom215/ideaboard/internal/models"
)

// The vote handlers serve both /api/idea/vote and /api/comment/vote; kind
// selects the table and the JSON shape.

// ListVotes returns every vote of kind.
func (h *Handler) ListVotes(kind models.VoteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		votes, err := h.store.ListVotes(r.Context(), kind)
		if err != nil {
			h.respondInternal(w, r, err)
			return
		}
		out := make([]any, len(votes))
		for i := range votes {
			out[i] = voteView(kind, &votes[i])
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// GetVote returns one vote.
func (h *Handler) GetVote(kind models.VoteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		v, err := h.store.GetVote(r.Context(), kind, id)
		if err != nil {
			h.respondStoreError(w, r, "Vote", err)
			return
		}
		respondJSON(w, http.StatusOK, voteView(kind, v))
	}
}

// CreateVote records the caller's vote on an existing idea or comment.
func (h *Handler) CreateVote(kind models.VoteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := currentUser(w, r)
		if !ok {
			return
		}

		var value int
		var target int64
		switch kind {
		case models.VoteOnComment:
			var in models.NewCommentVote
			if !decodeJSON(w, r, &in) || !validateRequest(w, &in) {
				return
			}
			value, target = in.Vote, in.CommentID
		default:
			var in models.NewIdeaVote
			if !decodeJSON(w, r, &in) || !validateRequest(w, &in) {
				return
			}
			value, target = in.Vote, in.IdeaID
		}

		v, err := h.store.CreateVote(r.Context(), kind, caller.ID, target, value)
		if err != nil {
			if errors.Is(err, database.ErrReferenceNotFound) {
				respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest,
					"Referenced "+string(kind)+" doesn't exist")
				return
			}
			h.respondInternal(w, r, err)
			return
		}
		respondCreated(w, r, v.ID, voteView(kind, v))
	}
}

// UpdateVote changes the value of a vote cast by the caller.
func (h *Handler) UpdateVote(kind models.VoteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		existing, err := h.store.GetVote(r.Context(), kind, id)
		if err != nil {
			h.respondStoreError(w, r, "Vote", err)
			return
		}
		if !requireOwner(w, caller, existing.VoteByUser) {
			return
		}

		var patch models.VotePatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		if patch.Vote == nil {
			respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, msgMissingVote)
			return
		}
		if !validateRequest(w, &patch) {
			return
		}

		v, err := h.store.UpdateVote(r.Context(), kind, id, *patch.Vote)
		if err != nil {
			h.respondStoreError(w, r, "Vote", err)
			return
		}
		respondJSON(w, http.StatusOK, voteView(kind, v))
	}
}

// DeleteVote removes a vote cast by the caller.
func (h *Handler) DeleteVote(kind models.VoteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		existing, err := h.store.GetVote(r.Context(), kind, id)
		if err != nil {
			h.respondStoreError(w, r, "Vote", err)
			return
		}
		if !requireOwner(w, caller, existing.VoteByUser) {
			return
		}

		if err := h.store.DeleteVote(r.Context(), kind, id); err != nil {
			h.respondStoreError(w, r, "Vote", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
