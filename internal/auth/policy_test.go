// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid minimum length", "Abcdef1!", nil},
		{"valid unicode", "Pässwörd1!", nil},
		{"valid maximum length", "Aa1!" + strings.Repeat("x", 60), nil},
		{"seven characters", "short1!", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"multibyte counts runes", "Ää1!ää", ErrPasswordTooShort},
		{"65 characters", "Aa1!" + strings.Repeat("x", 61), ErrPasswordTooLong},
		{"over 72 bytes", "Aa1!" + strings.Repeat("é", 35), ErrPasswordTooLong},
		{"leading space", " Abc12345!", ErrPasswordSurroundSpace},
		{"trailing space", "Abc12345! ", ErrPasswordSurroundSpace},
		{"trailing tab", "Abc12345!\t", ErrPasswordSurroundSpace},
		{"inner space allowed", "Abc 12345!", nil},
		{"lowercase only", "abcdefgh", ErrPasswordNotComplexEnough},
		{"no symbol", "Abcdefgh1", ErrPasswordNotComplexEnough},
		{"no digit", "Abcdefg!", ErrPasswordNotComplexEnough},
		{"no lowercase", "ABCDEFG1!", ErrPasswordNotComplexEnough},
		{"no uppercase", "abcdefg1!", ErrPasswordNotComplexEnough},
		{"length checked before whitespace", " short", ErrPasswordTooShort},
		{"whitespace checked before complexity", " abcdefgh", ErrPasswordSurroundSpace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePassword(tt.password)
			if !errors.Is(got, tt.want) {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"User.Name+tag@Sub.Example.org", true},
		{"a@b.c", true},
		{"o'brien@example.ie", true},
		{"not-an-email", false},
		{"user@localhost", false},
		{"user@-example.com", false},
		{"user@@example.com", false},
		{"user example@example.com", false},
		{".user@example.com", false},
		{"user.@example.com", false},
		{"", false},
		{strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid && err != nil {
				t.Errorf("ValidateEmail(%q) = %v, want nil", tt.email, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("ValidateEmail(%q) = %v, want ErrInvalidEmail", tt.email, err)
			}
		})
	}
}

func TestPolicyCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidEmail, "InvalidEmail"},
		{ErrPasswordTooShort, "TooShort"},
		{ErrPasswordTooLong, "TooLong"},
		{ErrPasswordSurroundSpace, "LeadingOrTrailingSpace"},
		{ErrPasswordNotComplexEnough, "InsufficientComplexity"},
		{errors.New("other"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := PolicyCode(tt.err); got != tt.want {
			t.Errorf("PolicyCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestPolicyMessages(t *testing.T) {
	if ErrPasswordTooShort.Error() != "Password must be longer than 8 characters" {
		t.Errorf("unexpected message %q", ErrPasswordTooShort.Error())
	}
	if ErrInvalidEmail.Error() != "Invalid email address" {
		t.Errorf("unexpected message %q", ErrInvalidEmail.Error())
	}
}
