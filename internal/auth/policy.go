// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"errors"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Password length bounds, counted in characters (runes).
const (
	MinPasswordLength = 8
	MaxPasswordLength = 64

	maxEmailLength = 254
)

// PolicyError is a registration-time credential policy violation. The code
// is sent to clients as the envelope code.
type PolicyError struct {
	Code    string
	Message string
}

func (e *PolicyError) Error() string {
	return e.Message
}

// Policy violations. Each is a distinct sentinel for errors.Is.
var (
	ErrInvalidEmail             = &PolicyError{Code: "InvalidEmail", Message: "Invalid email address"}
	ErrPasswordTooShort         = &PolicyError{Code: "TooShort", Message: "Password must be longer than 8 characters"}
	ErrPasswordTooLong          = &PolicyError{Code: "TooLong", Message: "Password must be less than 64 characters"}
	ErrPasswordSurroundSpace    = &PolicyError{Code: "LeadingOrTrailingSpace", Message: "Password must not start or end with empty spaces"}
	ErrPasswordNotComplexEnough = &PolicyError{Code: "InsufficientComplexity", Message: "Password must contain 1 upper case, lower case, number, and special character"}
)

const emailLocalChars = "a-z0-9!#$%&'*+/=?^_`{|}~-"

// emailPattern is an anchored RFC 2822 addr-spec: local@label(.label)+.
var emailPattern = regexp.MustCompile(`(?i)^[` + emailLocalChars + `]+(?:\.[` + emailLocalChars + `]+)*` +
	`@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// ValidateEmail reports ErrInvalidEmail unless email is a well-formed
// address. It does not change case.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword applies the password rules in order and returns the
// first violation: length, upper bound (including bcrypt's 72-byte input
// limit), surrounding whitespace, then character classes.
func ValidatePassword(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > MaxPasswordLength || len(pw) > maxBcryptInputBytes {
		return ErrPasswordTooLong
	}

	first, _ := utf8.DecodeRuneInString(pw)
	last, _ := utf8.DecodeLastRuneInString(pw)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return ErrPasswordSurroundSpace
	}

	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return ErrPasswordNotComplexEnough
	}
	return nil
}

// PolicyCode returns the policy code carried by err, or "" if err is not a
// policy violation.
func PolicyCode(err error) string {
	var pe *PolicyError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
