// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/ideaboard/internal/auth"
	"github.com/tomtom215/ideaboard/internal/logging"
	"github.com/tomtom215/ideaboard/internal/models"
	"github.com/tomtom215/ideaboard/internal/validation"
)

// Login exchanges an email and password for a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if !decodeJSON(w, r, &in) || !validateRequest(w, &in) {
		return
	}

	token, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrIncorrectCredentials) {
			respondError(w, http.StatusBadRequest, models.ErrCodeInvalidCredentials, auth.MsgIncorrectCredentials)
			return
		}
		h.respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.LoginResponse{AuthToken: token})
}

// Register creates an account. The response never includes the password.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	if !decodeJSON(w, r, &in) {
		return
	}

	u, err := h.auth.Register(r.Context(), &in)
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.As(err, &verr):
			apiErr := verr.ToAPIError()
			respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
		case auth.PolicyCode(err) != "":
			respondError(w, http.StatusBadRequest, auth.PolicyCode(err), err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, models.ErrCodeEmailTaken, auth.MsgEmailTaken)
		default:
			h.respondInternal(w, r, err)
		}
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", u.ID).Msg("User registered")
	respondCreated(w, r, u.ID, h.cleanUser(*u))
}

// ListUsers returns every user.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cleanSlice(users, h.cleanUser))
}

// GetUser returns one user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	u, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "User", err)
		return
	}
	respondJSON(w, http.StatusOK, h.cleanUser(*u))
}

// UpdateUser changes the caller's own profile.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.store.GetUser(r.Context(), id); err != nil {
		h.respondStoreError(w, r, "User", err)
		return
	}
	if !requireOwner(w, caller, id) {
		return
	}

	var patch models.UserPatch
	if !decodeJSON(w, r, &patch) || !validateRequest(w, &patch) {
		return
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, msgEmptyPatch)
		return
	}

	u, err := h.store.UpdateUser(r.Context(), id, &patch)
	if err != nil {
		h.respondStoreError(w, r, "User", err)
		return
	}
	respondJSON(w, http.StatusOK, h.cleanUser(*u))
}

// DeleteUser removes the caller's own account with everything it owns.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.store.GetUser(r.Context(), id); err != nil {
		h.respondStoreError(w, r, "User", err)
		return
	}
	if !requireOwner(w, caller, id) {
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		h.respondStoreError(w, r, "User", err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("user_id", id).Msg("User deleted")
	w.WriteHeader(http.StatusNoContent)
}
