package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("right")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "right" {
		t.Fatalf("expected hash to differ from plaintext")
	}

	ok, err := hasher.Check(hash, "right")
	if err != nil || !ok {
		t.Fatalf("expected password verification to succeed: %v", err)
	}

	ok, err = hasher.Check(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected wrong password verification to fail: %v", err)
	}
}

func TestCheckMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	if _, err := hasher.Check("not-a-hash", "right"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestNewPasswordHasherDefaultsCost(t *testing.T) {
	if got := NewPasswordHasher(0).Cost; got != DefaultPasswordCost {
		t.Fatalf("expected default cost %d, got %d", DefaultPasswordCost, got)
	}
}

func TestHashRejectsLongPassword(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	if _, err := hasher.Hash(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Fatalf("expected %d byte password to hash: %v", MaxPasswordBytes, err)
	}
	if _, err := hasher.Hash(strings.Repeat("a", MaxPasswordBytes+1)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}
