// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/ideaboard/internal/auth"
	"github.com/tomtom215/ideaboard/internal/models"
)

func TestSetupChiRejectsUnregisteredGate(t *testing.T) {
	cfg := testConfig()
	cfg.Security.Routes.Votes = "kerberos"

	_, err := NewRouter(&Handler{}, auth.NewGates(auth.GateOptions{}), cfg).SetupChi()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "votes")
	assert.Contains(t, err.Error(), "ideas_write")
}

func TestRouterHeaders(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	req := httptest.NewRequest(http.MethodOptions, "/api/ideas", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	pre := httptest.NewRecorder()
	env.handler.ServeHTTP(pre, req)
	assert.Equal(t, "*", pre.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	assertError(t, env.do(http.MethodPut, "/api/health", "", ""),
		http.StatusMethodNotAllowed, errCodeMethodNotAllowed, msgMethodNotAllowed)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodGet, "/api/ideas", "", "")

	rec := env.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ideaboard_auth_attempts_total")
	assert.NotContains(t, rec.Body.String(), models.ErrCodeInternalError)
}
