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

	"github.com/tomtom215/ideaboard/internal/models"
	"github.com/tomtom215/ideaboard/internal/validation"
)

func newTestService(t *testing.T) (*Service, *memoryStore, *bytes.Buffer) {
	t.Helper()
	store := newMemoryStore()
	security, logs := newCapturedSecurityLogger()
	return NewService(store, newTestHasher(), newTestTokens(t), security), store, logs
}

func validNewUser() *models.NewUser {
	return &models.NewUser{
		FirstName: "Pat",
		LastName:  "Doe",
		Nickname:  "pat",
		Email:     "Pat@Example.com",
		Password:  testPassword,
	}
}

func TestService_Register(t *testing.T) {
	svc, store, _ := newTestService(t)

	u, err := svc.Register(context.Background(), validNewUser())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if u.ID == 0 {
		t.Error("Register() returned no id")
	}
	if u.Email != "pat@example.com" {
		t.Errorf("email = %q, want lowercased", u.Email)
	}

	cred := store.creds["pat@example.com"]
	if cred == nil {
		t.Fatal("credential not stored")
	}
	if !IsBcryptHash(cred.PasswordHash) || cred.PasswordHash == testPassword {
		t.Fatalf("stored hash = %q, want a bcrypt hash", cred.PasswordHash)
	}
	if ok, err := newTestHasher().Verify(testPassword, cred.PasswordHash); err != nil || !ok {
		t.Errorf("Verify(stored) = %v, %v; want true, nil", ok, err)
	}
}

func TestService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.NewUser)
		code    string
		message string
	}{
		{"missing first_name", func(u *models.NewUser) { u.FirstName = "" }, validation.CodeValidationError, "Missing 'first_name' in request body"},
		{"missing password", func(u *models.NewUser) { u.Password = "" }, validation.CodeValidationError, "Missing 'password' in request body"},
		{"bad email", func(u *models.NewUser) { u.Email = "not-an-email" }, "InvalidEmail", "Invalid email address"},
		{"short password", func(u *models.NewUser) { u.Password = "short1!" }, "TooShort", ErrPasswordTooShort.Message},
		{"spaced password", func(u *models.NewUser) { u.Password = " Abc12345!" }, "LeadingOrTrailingSpace", ErrPasswordSurroundSpace.Message},
		{"simple password", func(u *models.NewUser) { u.Password = "abcdefgh" }, "InsufficientComplexity", ErrPasswordNotComplexEnough.Message},
		{"email checked before password", func(u *models.NewUser) { u.Email = "x"; u.Password = "x" }, "InvalidEmail", "Invalid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)
			in := validNewUser()
			tt.mutate(in)

			_, err := svc.Register(context.Background(), in)
			if err == nil {
				t.Fatal("Register() succeeded, want error")
			}

			var code, message string
			var verr *validation.RequestValidationError
			if errors.As(err, &verr) {
				apiErr := verr.ToAPIError()
				code, message = apiErr.Code, apiErr.Message
			} else {
				code, message = PolicyCode(err), err.Error()
			}
			if code != tt.code || message != tt.message {
				t.Errorf("error = %s %q, want %s %q", code, message, tt.code, tt.message)
			}
			if len(store.creds) != 0 {
				t.Errorf("rejected registration stored %d credentials", len(store.creds))
			}
		})
	}
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.Register(context.Background(), validNewUser()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	again := validNewUser()
	again.Email = "PAT@example.COM"
	if _, err := svc.Register(context.Background(), again); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register(duplicate) error = %v, want ErrEmailTaken", err)
	}
}

func TestService_Login(t *testing.T) {
	svc, store, logs := newTestService(t)
	u := seedUser(t, store)

	token, err := svc.Login(context.Background(), "PAT@example.com", testPassword)
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	claims, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if claims.Subject != "pat@example.com" || claims.UserID != u.ID || claims.FirstName != "Pat" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	_, _ = svc.Login(context.Background(), "pat@example.com", "Wr0ng!pass")
	out := logs.String()
	for _, want := range []string{"login_success", "login_failure"} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q: %s", want, out)
		}
	}
	for _, secret := range []string{testPassword, "Wr0ng!pass"} {
		if strings.Contains(out, secret) {
			t.Errorf("plaintext password %q reached the logs", secret)
		}
	}
}

func TestService_LoginFailuresLookAlike(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedUser(t, store)

	_, unknown := svc.Login(context.Background(), "ghost@example.com", testPassword)
	_, wrong := svc.Login(context.Background(), "pat@example.com", "Wr0ng!pass")
	_, empty := svc.Login(context.Background(), "", "")

	for _, err := range []error{unknown, wrong, empty} {
		if !errors.Is(err, ErrIncorrectCredentials) || err.Error() != ErrIncorrectCredentials.Error() {
			t.Errorf("Login() error = %v, want ErrIncorrectCredentials", err)
		}
	}
}

func TestService_LoginUnknownEmailPaysOneComparison(t *testing.T) {
	store := newMemoryStore()
	seedUser(t, store)
	h := newCountingHasher()
	svc := NewService(store, h, newTestTokens(t), nil)

	if _, err := svc.Login(context.Background(), "ghost@example.com", testPassword); !errors.Is(err, ErrIncorrectCredentials) {
		t.Fatalf("Login() error = %v, want ErrIncorrectCredentials", err)
	}
	got := h.verifiedHashes()
	if len(got) != 1 || got[0] != decoyHash(h) {
		t.Errorf("Verify calls = %q, want one against the decoy", got)
	}
}

func TestService_LoginStoreFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.findErr = errors.New("connection refused")

	_, err := svc.Login(context.Background(), "pat@example.com", testPassword)
	if err == nil || errors.Is(err, ErrIncorrectCredentials) {
		t.Errorf("Login() error = %v, want an internal failure", err)
	}
}

func TestService_LoginIntegrityFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedUser(t, store)
	store.creds["pat@example.com"].PasswordHash = "garbage"

	_, err := svc.Login(context.Background(), "pat@example.com", testPassword)
	if !HasErrorCode(err, CodeInvalidHash) {
		t.Errorf("Login() error = %v, want code %s", err, CodeInvalidHash)
	}
}
