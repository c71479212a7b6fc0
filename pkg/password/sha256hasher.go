package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Sha256Hasher implements Hasher using a plain unsalted SHA-256 digest.
//
// This preserves compatibility with digests produced by older deployments.
// The digest is deterministic: the same password always yields the same
// hex string, and an empty password maps to an empty digest rather than
// an error. New passwords should use BcryptHasher instead.
type Sha256Hasher struct{}

// Hash implements Hasher.Hash
func (h *Sha256Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", nil
	}

	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify implements Hasher.Verify by recomputing the digest and comparing
func (h *Sha256Hasher) Verify(password, digest string) (bool, error) {
	computed, err := h.Hash(password)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1, nil
}
