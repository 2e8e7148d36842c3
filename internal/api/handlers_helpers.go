// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/ideaboard/internal/auth"
	"github.com/tomtom215/ideaboard/internal/database"
	"github.com/tomtom215/ideaboard/internal/logging"
	"github.com/tomtom215/ideaboard/internal/models"
	"github.com/tomtom215/ideaboard/internal/validation"
)

const maxBodyBytes = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternalError, msgServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondCreated sends 201 with a Location header for the new resource.
func respondCreated(w http.ResponseWriter, r *http.Request, id int64, v any) {
	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(id, 10)))
	respondJSON(w, http.StatusCreated, v)
}

// respondError sends the error envelope. It shares its encoder with the
// auth gates so equal errors are byte-identical across the API.
func respondError(w http.ResponseWriter, status int, code, message string) {
	auth.WriteError(w, status, code, message)
}

// respondInternal reports an unexpected failure. Nothing is written when
// the client has already gone away.
func (h *Handler) respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(r.Context().Err(), context.Canceled) {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled")
		return
	}
	logging.Ctx(r.Context()).Error().
		Str("path", sanitizeLogValue(r.URL.Path)).
		Str("error", sanitizeLogValue(err.Error())).
		Msg("API Error")

	message := msgServerError
	if h.verbose {
		message = err.Error()
	}
	respondError(w, http.StatusInternalServerError, models.ErrCodeInternalError, message)
}

// respondStoreError maps store errors for a single resource to responses.
func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, resource string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, resource+" doesn't exist")
		return
	}
	h.respondInternal(w, r, err)
}

// decodeJSON reads a JSON body of at most 1 MiB into dst. An empty body
// decodes as an empty object so missing fields are reported by validation.
// It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, models.ErrCodeBadRequest, msgBodyTooLarge)
			return false
		}
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// validateRequest validates a struct using go-playground/validator and
// writes the first failure.
func validateRequest(w http.ResponseWriter, v any) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
	return false
}

// idParam parses the {id} path parameter.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

// currentUser returns the identity attached by a user-producing gate.
func currentUser(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok || id.Anonymous() {
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, auth.MsgUnauthorized)
		return nil, false
	}
	return id, true
}

// requireOwner writes 403 unless the caller owns the resource.
func requireOwner(w http.ResponseWriter, caller *auth.Identity, owner int64) bool {
	if caller.ID != owner {
		respondError(w, http.StatusForbidden, models.ErrCodeForbidden, msgForbidden)
		return false
	}
	return true
}
