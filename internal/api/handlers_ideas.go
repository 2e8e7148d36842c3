// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import (
	"net/http"

	"github.com/tomtom215/ideaboard/internal/logging"
	"github.com/tomtom215/ideaboard/internal/models"
)

// ListIdeas returns every idea with its vote total.
func (h *Handler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.store.ListIdeas(r.Context())
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cleanSlice(ideas, h.cleanIdea))
}

// GetIdea returns one idea.
func (h *Handler) GetIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	idea, err := h.store.GetIdea(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "Idea", err)
		return
	}
	respondJSON(w, http.StatusOK, h.cleanIdea(*idea))
}

// CreateIdea posts an idea authored by the caller.
func (h *Handler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in models.NewIdea
	if !decodeJSON(w, r, &in) || !validateRequest(w, &in) {
		return
	}

	idea, err := h.store.CreateIdea(r.Context(), caller.ID, &in)
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("idea_id", idea.ID).Int64("author", caller.ID).Msg("Idea created")
	respondCreated(w, r, idea.ID, h.cleanIdea(*idea))
}

// UpdateIdea changes an idea owned by the caller.
func (h *Handler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := h.store.GetIdea(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "Idea", err)
		return
	}
	if !requireOwner(w, caller, existing.Author) {
		return
	}

	var patch models.IdeaPatch
	if !decodeJSON(w, r, &patch) || !validateRequest(w, &patch) {
		return
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, msgEmptyPatch)
		return
	}

	idea, err := h.store.UpdateIdea(r.Context(), id, &patch)
	if err != nil {
		h.respondStoreError(w, r, "Idea", err)
		return
	}
	respondJSON(w, http.StatusOK, h.cleanIdea(*idea))
}

// DeleteIdea removes an idea owned by the caller with its comments and votes.
func (h *Handler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existing, err := h.store.GetIdea(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "Idea", err)
		return
	}
	if !requireOwner(w, caller, existing.Author) {
		return
	}

	if err := h.store.DeleteIdea(r.Context(), id); err != nil {
		h.respondStoreError(w, r, "Idea", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
