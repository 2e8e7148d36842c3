// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/ideaboard/internal/logging"
)

func requireRejection(t *testing.T, err error, kind RejectionKind, message string) {
	t.Helper()
	rej, ok := AsRejection(err)
	if !ok {
		t.Fatalf("error = %v, want *Rejection", err)
	}
	if rej.Kind != kind {
		t.Errorf("kind = %s, want %s", rej.Kind, kind)
	}
	if rej.Message != message {
		t.Errorf("message = %q, want %q", rej.Message, message)
	}
}

func TestBasicAuthenticator(t *testing.T) {
	store := newMemoryStore()
	u := seedUser(t, store)
	security, logs := newCapturedSecurityLogger()
	a := NewBasicAuthenticator(store, newTestHasher(), security)

	t.Run("valid credentials", func(t *testing.T) {
		id, err := a.Authenticate(context.Background(), newRequest(basicHeader("pat@example.com", testPassword)))
		if err != nil {
			t.Fatalf("Authenticate() error: %v", err)
		}
		if id.ID != u.ID || id.Email != "pat@example.com" || id.Gate != "basic" {
			t.Errorf("unexpected identity: %+v", id)
		}
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		if _, err := a.Authenticate(context.Background(), newRequest(basicHeader("PAT@Example.COM", testPassword))); err != nil {
			t.Errorf("Authenticate() error: %v", err)
		}
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		header := "bAsIc " + strings.TrimPrefix(basicHeader("pat@example.com", testPassword), "Basic ")
		if _, err := a.Authenticate(context.Background(), newRequest(header)); err != nil {
			t.Errorf("Authenticate() error: %v", err)
		}
	})

	t.Run("password may contain colons", func(t *testing.T) {
		_, err := a.Authenticate(context.Background(), newRequest(basicHeader("pat@example.com", testPassword+":x")))
		requireRejection(t, err, KindInvalidCredential, MsgUnauthorized)
	})

	tests := []struct {
		name    string
		header  string
		kind    RejectionKind
		message string
	}{
		{"no header", "", KindMissingCredential, MsgMissingBasic},
		{"bearer scheme", "Bearer abc", KindMissingCredential, MsgMissingBasic},
		{"not base64", "Basic %%%", KindMalformedCredential, MsgUnauthorized},
		{"no colon", "Basic " + "cGF0", KindMalformedCredential, MsgUnauthorized},
		{"empty password", basicHeader("pat@example.com", ""), KindMalformedCredential, MsgUnauthorized},
		{"unknown email", basicHeader("nobody@example.com", testPassword), KindInvalidCredential, MsgUnauthorized},
		{"wrong password", basicHeader("pat@example.com", "Wr0ng!pass"), KindInvalidCredential, MsgUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), newRequest(tt.header))
			requireRejection(t, err, tt.kind, tt.message)
		})
	}

	if strings.Contains(logs.String(), testPassword) {
		t.Error("plaintext password reached the logs")
	}
}

func TestBasicAuthenticator_UnknownEmailPaysOneComparison(t *testing.T) {
	store := newMemoryStore()
	seedUser(t, store)
	h := newCountingHasher()
	a := NewBasicAuthenticator(store, h, nil)

	_, err := a.Authenticate(context.Background(), newRequest(basicHeader("ghost@example.com", testPassword)))
	requireRejection(t, err, KindInvalidCredential, MsgUnauthorized)
	_, err = a.Authenticate(context.Background(), newRequest(basicHeader("pat@example.com", "Wr0ng!pass")))
	requireRejection(t, err, KindInvalidCredential, MsgUnauthorized)

	got := h.verifiedHashes()
	if len(got) != 2 {
		t.Fatalf("Verify called %d times, want 1 per request", len(got))
	}
	if got[0] != decoyHash(h) {
		t.Errorf("unknown email verified against %q, want the decoy", got[0])
	}
	if cost, _ := bcrypt.Cost([]byte(got[0])); cost != h.Cost() {
		t.Errorf("decoy cost = %d, want hasher cost %d", cost, h.Cost())
	}
	if got[1] != store.creds["pat@example.com"].PasswordHash {
		t.Error("known email should verify against its stored hash")
	}
}

func TestBasicAuthenticator_StoreFailureSkipsDecoy(t *testing.T) {
	store := newMemoryStore()
	store.findErr = errors.New("connection refused")
	h := newCountingHasher()
	a := NewBasicAuthenticator(store, h, nil)

	_, err := a.Authenticate(context.Background(), newRequest(basicHeader("pat@example.com", testPassword)))
	requireRejection(t, err, KindStoreFailure, MsgUnauthorized)
	if n := len(h.verifiedHashes()); n != 0 {
		t.Errorf("Verify called %d times on store failure, want 0", n)
	}
}

func TestBasicAuthenticator_IntegrityFailure(t *testing.T) {
	store := newMemoryStore()
	seedUser(t, store)
	store.creds["pat@example.com"].PasswordHash = "corrupted"
	security, logs := newCapturedSecurityLogger()
	a := NewBasicAuthenticator(store, newTestHasher(), security)

	_, err := a.Authenticate(context.Background(), newRequest(basicHeader("pat@example.com", testPassword)))
	requireRejection(t, err, KindIntegrityFailure, MsgUnauthorized)
	if !strings.Contains(logs.String(), "integrity_failure") {
		t.Errorf("integrity failure not logged: %s", logs.String())
	}
}

func TestBasicAuthenticator_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.findErr = errors.New("connection refused")
	a := NewBasicAuthenticator(store, newTestHasher(), nil)

	_, err := a.Authenticate(context.Background(), newRequest(basicHeader("pat@example.com", testPassword)))
	requireRejection(t, err, KindStoreFailure, MsgUnauthorized)
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("cause lost: %v", err)
	}
}

func TestBearerAuthenticator(t *testing.T) {
	store := newMemoryStore()
	u := seedUser(t, store)
	tokens := newTestTokens(t)
	a := NewBearerAuthenticator(tokens, store)

	valid, _ := tokens.Issue("pat@example.com", UserClaims{UserID: u.ID, FirstName: "Pat"})

	t.Run("valid token", func(t *testing.T) {
		id, err := a.Authenticate(context.Background(), newRequest("Bearer "+valid))
		if err != nil {
			t.Fatalf("Authenticate() error: %v", err)
		}
		if id.ID != u.ID || id.Gate != "bearer" || id.Claims == nil || id.Claims.UserID != u.ID {
			t.Errorf("unexpected identity: %+v", id)
		}
	})

	t.Run("lowercase scheme", func(t *testing.T) {
		if _, err := a.Authenticate(context.Background(), newRequest("bearer "+valid)); err != nil {
			t.Errorf("Authenticate() error: %v", err)
		}
	})

	expiredTokens := newTestTokens(t, WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	expired, _ := expiredTokens.Issue("pat@example.com", UserClaims{UserID: u.ID})
	unknown, _ := tokens.Issue("ghost@example.com", UserClaims{UserID: u.ID})
	mismatch, _ := tokens.Issue("pat@example.com", UserClaims{UserID: u.ID + 100})

	tests := []struct {
		name    string
		header  string
		kind    RejectionKind
		message string
	}{
		{"no header", "", KindMissingCredential, MsgMissingBearer},
		{"basic scheme", basicHeader("pat@example.com", testPassword), KindMissingCredential, MsgMissingBearer},
		{"empty token", "Bearer ", KindMalformedCredential, MsgUnauthorized},
		{"garbage", "Bearer abc.def.ghi", KindInvalidCredential, MsgUnauthorized},
		{"expired", "Bearer " + expired, KindInvalidCredential, MsgUnauthorized},
		{"unknown subject", "Bearer " + unknown, KindInvalidCredential, MsgUnauthorized},
		{"user_id mismatch", "Bearer " + mismatch, KindInvalidCredential, MsgUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), newRequest(tt.header))
			requireRejection(t, err, tt.kind, tt.message)
		})
	}
}

func TestBearerAuthenticator_CanceledAfterLookup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newMemoryStore()
	u := seedUser(t, store)
	store.onFind = cancel
	tokens := newTestTokens(t)
	token, _ := tokens.Issue("pat@example.com", UserClaims{UserID: u.ID})

	id, err := NewBearerAuthenticator(tokens, store).Authenticate(ctx, newRequest("Bearer "+token))
	if id != nil {
		t.Errorf("identity attached to a canceled request: %+v", id)
	}
	requireRejection(t, err, KindCanceled, MsgUnauthorized)
}

func TestBearerAuthenticator_LogsMaskedToken(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	store := newMemoryStore()
	seedUser(t, store)
	token := "eyJhbGciOiJIUzI1NiJ9.not-a-real-payload.signature"

	_, err := NewBearerAuthenticator(newTestTokens(t), store).Authenticate(context.Background(), newRequest("Bearer "+token))
	requireRejection(t, err, KindInvalidCredential, MsgUnauthorized)

	out := buf.String()
	if strings.Contains(out, token) {
		t.Fatalf("raw token reached the logs: %s", out)
	}
	if !strings.Contains(out, logging.SanitizeToken(token)) {
		t.Errorf("masked token missing from logs: %s", out)
	}
}

func TestAPITokenAuthenticator(t *testing.T) {
	a := NewAPITokenAuthenticator("static-api-token-value")

	id, err := a.Authenticate(context.Background(), newRequest("Token static-api-token-value"))
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if !id.Anonymous() || id.Gate != "apitoken" {
		t.Errorf("unexpected identity: %+v", id)
	}

	for name, header := range map[string]string{
		"missing":         "",
		"no scheme":       "static-api-token-value",
		"wrong token":     "Token static-api-token-valuX",
		"prefix of token": "Token static",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), newRequest(header))
			rej, ok := AsRejection(err)
			if !ok {
				t.Fatalf("error = %v, want *Rejection", err)
			}
			if rej.Message != MsgUnauthorized {
				t.Errorf("message = %q, want %q", rej.Message, MsgUnauthorized)
			}
		})
	}
}

func TestIdentityContext(t *testing.T) {
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Error("empty context should carry no identity")
	}
	ctx := WithIdentity(context.Background(), &Identity{ID: 3})
	id, ok := IdentityFromContext(ctx)
	if !ok || id.ID != 3 {
		t.Errorf("IdentityFromContext() = %+v, %v", id, ok)
	}
}
