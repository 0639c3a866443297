package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces and checks salted one-way password digests.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher returns a bcrypt hasher. Costs outside bcrypt's accepted
// range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// Compared against when an account does not exist so that unknown emails
	// cost the same as wrong passwords.
	dummy, err := bcrypt.GenerateFromPassword(prehash("gophauth-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hasher: %w", err)
	}

	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// prehash reduces password to the base64 SHA-256 digest (44 bytes) fed to
// bcrypt, so passwords of any length are accepted and every byte counts.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Hash returns the bcrypt digest of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether password matches hash. An empty or corrupt hash
// never matches.
func (h *PasswordHasher) Compare(hash, password string) bool {
	if hash == "" {
		h.CompareDummy(password)
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(password))
	return err == nil
}

// CompareDummy burns the same work as Compare and always fails.
func (h *PasswordHasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, prehash(password))
}

// Cost is the bcrypt work factor in use.
func (h *PasswordHasher) Cost() int {
	return h.cost
}
