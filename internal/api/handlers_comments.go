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

// ListComments returns every comment with its vote total.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.store.ListComments(r.Context())
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cleanSlice(comments, h.cleanComment))
}

// GetComment returns one comment.
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetComment(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "Comment", err)
		return
	}
	respondJSON(w, http.StatusOK, h.cleanComment(*c))
}

// CreateComment posts a comment by the caller on an existing idea.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in models.NewComment
	if !decodeJSON(w, r, &in) || !validateRequest(w, &in) {
		return
	}

	c, err := h.store.CreateComment(r.Context(), caller.ID, &in)
	if err != nil {
		if errors.Is(err, database.ErrReferenceNotFound) {
			respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, "Referenced idea doesn't exist")
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	respondCreated(w, r, c.ID, h.cleanComment(*c))
}

// UpdateComment changes the text of a comment owned by the caller.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := h.store.GetComment(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "Comment", err)
		return
	}
	if !requireOwner(w, caller, existing.UserID) {
		return
	}

	var patch models.CommentPatch
	if !decodeJSON(w, r, &patch) || !validateRequest(w, &patch) {
		return
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, msgEmptyPatch)
		return
	}

	c, err := h.store.UpdateComment(r.Context(), id, &patch)
	if err != nil {
		h.respondStoreError(w, r, "Comment", err)
		return
	}
	respondJSON(w, http.StatusOK, h.cleanComment(*c))
}

// DeleteComment removes a comment owned by the caller with its votes.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := h.store.GetComment(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "Comment", err)
		return
	}
	if !requireOwner(w, caller, existing.UserID) {
		return
	}

	if err := h.store.DeleteComment(r.Context(), id); err != nil {
		h.respondStoreError(w, r, "Comment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
