// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher()
	if h.Cost() != 12 {
		t.Errorf("Cost() = %d, want 12", h.Cost())
	}
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash(testPassword)
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if strings.Contains(hash, testPassword) {
		t.Fatal("hash contains the plaintext")
	}
	if !IsBcryptHash(hash) {
		t.Fatalf("Hash() = %q, not a bcrypt hash", hash)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Errorf("hash cost = %d, want %d", cost, bcrypt.MinCost)
	}

	ok, err := h.Verify(testPassword, hash)
	if err != nil || !ok {
		t.Errorf("Verify(correct) = %v, %v; want true, nil", ok, err)
	}

	ok, err = h.Verify("Wr0ng!pass", hash)
	if err != nil || ok {
		t.Errorf("Verify(wrong) = %v, %v; want false, nil", ok, err)
	}
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	h := newTestHasher()
	a, _ := h.Hash(testPassword)
	b, _ := h.Hash(testPassword)
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestBcryptHasher_RejectsEmptyAndHashedInput(t *testing.T) {
	h := newTestHasher()

	if _, err := h.Hash(""); !HasErrorCode(err, CodeEmptyPassword) {
		t.Errorf("Hash(\"\") error = %v, want %s", err, CodeEmptyPassword)
	}

	hash, _ := h.Hash(testPassword)
	if _, err := h.Hash(hash); !HasErrorCode(err, CodeAlreadyHashed) {
		t.Errorf("Hash(hash) error = %v, want %s", err, CodeAlreadyHashed)
	}
}

func TestBcryptHasher_InvalidStoredHash(t *testing.T) {
	h := newTestHasher()
	for _, stored := range []string{"", "plaintext", "$2a$12$truncated"} {
		ok, err := h.Verify(testPassword, stored)
		if ok {
			t.Errorf("Verify against %q matched", stored)
		}
		if !HasErrorCode(err, CodeInvalidHash) {
			t.Errorf("Verify against %q error = %v, want %s", stored, err, CodeInvalidHash)
		}
	}
}

func TestBcryptHasher_OverlongInputNeverMatches(t *testing.T) {
	h := newTestHasher()
	hash, _ := h.Hash(strings.Repeat("a", 72))

	ok, err := h.Verify(strings.Repeat("a", 73), hash)
	if ok || err != nil {
		t.Errorf("Verify(73 bytes) = %v, %v; want false, nil", ok, err)
	}
}

func TestDecoyHash(t *testing.T) {
	h := newTestHasher()
	decoy := decoyHash(h)

	if cost, err := bcrypt.Cost([]byte(decoy)); err != nil || cost != bcrypt.MinCost {
		t.Fatalf("decoy cost = %d, %v; want %d", cost, err, bcrypt.MinCost)
	}
	if again := decoyHash(newTestHasher()); again != decoy {
		t.Error("decoy should be shared by hashers of the same cost")
	}
	if ok, err := h.Verify(testPassword, decoy); err != nil || ok {
		t.Errorf("Verify(decoy) = %v, %v; want false, nil", ok, err)
	}
}

func TestDecoyHash_FallsBackWhenGenerationFails(t *testing.T) {
	decoy := decoyHash(NewBcryptHasher(WithCost(bcrypt.MaxCost + 1)))
	if decoy != fallbackDecoyHash {
		t.Fatalf("decoy = %q, want fallback", decoy)
	}
	if cost, err := bcrypt.Cost([]byte(decoy)); err != nil || cost != DefaultBcryptCost {
		t.Errorf("fallback cost = %d, %v; want %d", cost, err, DefaultBcryptCost)
	}
}
