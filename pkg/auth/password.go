package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
)

// saltSize matches the HMAC-SHA512 block-sized key the original catalog
// generated per user.
const saltSize = 64

// HashPassword derives a salted hash for a plaintext password. A fresh
// random salt is generated per call and doubles as the HMAC key, so the
// hash is reproducible only with the stored salt.
//
// Reusing the key as the stored salt is kept for verification parity with
// existing user documents; a standalone deployment should migrate to a
// memory-hard KDF.
func HashPassword(plaintext string) (hash, salt []byte, err error) {
	salt = make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(plaintext))
	return mac.Sum(nil), salt, nil
}

// VerifyPassword reports whether plaintext hashes to the stored hash under
// the stored salt. Comparison is constant time.
func VerifyPassword(plaintext string, hash, salt []byte) bool {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(plaintext))
	return subtle.ConstantTimeCompare(mac.Sum(nil), hash) == 1
}
