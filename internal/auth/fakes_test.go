// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/ideaboard/internal/database"
	"github.com/tomtom215/ideaboard/internal/logging"
	"github.com/tomtom215/ideaboard/internal/models"
)

const (
	testSecret   = "test-secret-that-is-at-least-32-characters"
	testIssuer   = "ideaboard-test"
	testPassword = "Sup3r$ecret"
)

// memoryStore is an in-memory UserStore.
type memoryStore struct {
	mu      sync.Mutex
	creds   map[string]*models.Credential
	nextID  int64
	lookups int

	// findErr, when set, is returned by every lookup after onFind runs.
	findErr error
	onFind  func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{creds: make(map[string]*models.Credential), nextID: 1}
}

func (s *memoryStore) FindCredentialByEmail(_ context.Context, email string) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.onFind != nil {
		s.onFind()
	}
	if s.findErr != nil {
		return nil, s.findErr
	}
	c, ok := s.creds[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memoryStore) CreateUser(_ context.Context, u *models.User, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(u.Email)
	if _, ok := s.creds[email]; ok {
		return database.ErrDuplicateEmail
	}
	u.ID = s.nextID
	s.nextID++
	u.Email = email
	u.DateCreated = time.Now()
	u.DateModified = u.DateCreated
	s.creds[email] = &models.Credential{
		ID:           u.ID,
		Email:        email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Nickname:     u.Nickname,
		PasswordHash: passwordHash,
	}
	return nil
}

func (s *memoryStore) lookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

func newTestHasher() *BcryptHasher {
	return NewBcryptHasher(WithCost(bcrypt.MinCost))
}

// countingHasher records the hash passed to every Verify call.
type countingHasher struct {
	*BcryptHasher

	mu       sync.Mutex
	verified []string
}

func newCountingHasher() *countingHasher {
	return &countingHasher{BcryptHasher: newTestHasher()}
}

func (h *countingHasher) Verify(password, hash string) (bool, error) {
	h.mu.Lock()
	h.verified = append(h.verified, hash)
	h.mu.Unlock()
	return h.BcryptHasher.Verify(password, hash)
}

func (h *countingHasher) verifiedHashes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.verified...)
}

func newTestTokens(t *testing.T, opts ...TokenOption) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, testIssuer, time.Hour, opts...)
	if err != nil {
		t.Fatalf("NewTokenManager() error: %v", err)
	}
	return m
}

// seedUser stores pat@example.com with testPassword.
func seedUser(t *testing.T, store *memoryStore) *models.User {
	t.Helper()
	hash, err := newTestHasher().Hash(testPassword)
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	u := &models.User{FirstName: "Pat", LastName: "Doe", Email: "pat@example.com", Nickname: "pat"}
	if err := store.CreateUser(context.Background(), u, hash); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	return u
}

func newCapturedSecurityLogger() (*logging.SecurityLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logging.NewSecurityLoggerWithLogger(logging.NewTestLogger(buf)), buf
}

func basicHeader(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func newRequest(authorization string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/ideas", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}
