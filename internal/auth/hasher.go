// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/ideaboard/internal/metrics"
)

// DefaultBcryptCost is the work factor for all stored passwords.
const DefaultBcryptCost = 12

const maxBcryptInputBytes = 72

// fallbackDecoyHash is a well-formed cost-12 hash used when a decoy cannot
// be generated. Verify against it still runs the full key schedule.
const fallbackDecoyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// decoyHashes holds one decoy per bcrypt cost.
var decoyHashes sync.Map

// Hasher error codes.
const (
	CodeEmptyPassword = "AUTH_EMPTY_PASSWORD"
	CodeAlreadyHashed = "AUTH_ALREADY_HASHED"
	CodeInvalidHash   = "AUTH_INVALID_HASH"
	CodeHashFailed    = "AUTH_HASH_FAILED"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code(CodeEmptyPassword).Errorf("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted bcrypt hash of the password.
	Hash(password string) (string, error)

	// Verify checks if the password matches the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or error on invalid hash.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher with golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	cost int
}

// HasherOption configures a BcryptHasher.
type HasherOption func(*BcryptHasher)

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) HasherOption {
	return func(h *BcryptHasher) {
		h.cost = cost
	}
}

// NewBcryptHasher creates a hasher at DefaultBcryptCost.
func NewBcryptHasher(opts ...HasherOption) *BcryptHasher {
	h := &BcryptHasher{cost: DefaultBcryptCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash produces a bcrypt hash with a fresh salt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if IsBcryptHash(password) {
		return "", oops.Code(CodeAlreadyHashed).Errorf("refusing to hash a value that is already a bcrypt hash")
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	metrics.ObservePasswordHash(time.Since(start))
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", oops.Code(CodeHashFailed).Errorf("password exceeds 72 bytes")
		}
		return "", oops.Code(CodeHashFailed).Wrap(err)
	}
	return string(hash), nil
}

// Verify compares password against hash in constant time.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return false, oops.Code(CodeInvalidHash).Wrap(err)
	}
	// No stored hash can match input bcrypt would have refused to hash.
	if len(password) > maxBcryptInputBytes {
		return false, nil
	}

	start := time.Now()
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	metrics.ObservePasswordHash(time.Since(start))

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, oops.Code(CodeInvalidHash).Wrap(err)
	}
}

// IsBcryptHash reports whether s is a structurally valid bcrypt hash.
func IsBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// HasErrorCode reports whether err carries the oops code.
func HasErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	return oopsErr.Code() == code
}

// decoyHash returns a valid hash at h's cost that is shared by every caller
// using the same cost. Hashers without a Cost method get DefaultBcryptCost.
func decoyHash(h PasswordHasher) string {
	cost := DefaultBcryptCost
	if c, ok := h.(interface{ Cost() int }); ok {
		cost = c.Cost()
	}
	if v, ok := decoyHashes.Load(cost); ok {
		return v.(string)
	}

	hash := fallbackDecoyHash
	if b, err := bcrypt.GenerateFromPassword([]byte(rand.Text()), cost); err == nil {
		hash = string(b)
	}
	v, _ := decoyHashes.LoadOrStore(cost, hash)
	return v.(string)
}

// verifyDecoy spends one comparison so that an unknown email costs the same
// as a wrong password. The result is discarded.
func verifyDecoy(h PasswordHasher, decoy, password string) {
	_, _ = h.Verify(password, decoy)
}
