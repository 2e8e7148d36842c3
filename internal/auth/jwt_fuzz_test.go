// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/ideaboard/internal/config"
)

// FuzzTokenVerify feeds malformed, tampered and hostile tokens to Verify.
func FuzzTokenVerify(f *testing.F) {
	manager, err := NewTokenManagerFromConfig(&config.SecurityConfig{
		JWTSecret: "test-secret-key-for-fuzzing-at-least-32-chars-long",
		JWTIssuer: "ideaboard",
		TokenTTL:  24 * time.Hour,
	})
	if err != nil {
		f.Fatal(err)
	}

	validToken, _ := manager.Issue("pat@example.com", UserClaims{UserID: 1, FirstName: "Pat"})
	f.Add(validToken)
	f.Add("")
	f.Add("invalid.token.here")
	f.Add("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJhQGIuYyJ9.invalid")
	f.Add("eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJhQGIuYyJ9.") // alg none
	f.Add("eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJhQGIuYyJ9.sig")
	f.Add("..." + validToken)
	f.Add(validToken + "...")
	f.Add(validToken[:len(validToken)-5])
	f.Add("Bearer " + validToken)
	f.Add("\x00" + validToken)

	f.Fuzz(func(t *testing.T, tokenString string) {
		claims, err := manager.Verify(tokenString)
		if err == nil {
			if strings.IndexByte(tokenString, 0) >= 0 {
				t.Error("Verify accepted a token with a null byte")
			}
			if claims == nil || claims.Subject == "" {
				t.Fatal("Verify accepted a token without a subject")
			}
			return
		}
		if !errors.Is(err, ErrTokenMalformed) && !errors.Is(err, ErrTokenBadSignature) && !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Verify error %v is not one of the token failure classes", err)
		}
	})
}

// FuzzValidatePassword checks that the password rules never panic and that
// accepted passwords satisfy every rule.
func FuzzValidatePassword(f *testing.F) {
	for _, seed := range []string{"", "Abcdef1!", " Abc12345!", "abcdefgh", "Pässwörd1!", "\xff\xfe"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, pw string) {
		if ValidatePassword(pw) != nil {
			return
		}
		n := utf8.RuneCountInString(pw)
		if n < MinPasswordLength || n > MaxPasswordLength || len(pw) > 72 {
			t.Errorf("accepted password with %d runes and %d bytes", n, len(pw))
		}
		if strings.TrimSpace(pw) != pw {
			t.Errorf("accepted password with surrounding whitespace: %q", pw)
		}
	})
}
