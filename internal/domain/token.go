package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewHoldToken generates a high-entropy hold token and its hash. Only the
// hash is ever persisted or logged; the plaintext is returned to the caller
// exactly once as their proof of ownership.
func NewHoldToken() (plain, hash string) {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	plain = hex.EncodeToString(b)
	return plain, HashHoldToken(plain)
}

// HashHoldToken is the stored form of a plaintext hold token.
func HashHoldToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
