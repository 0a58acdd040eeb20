// Package auth implements password hashing for the credential store.
//
// New registrations get a per-user random salt and a PBKDF2-SHA256 derived
// key, both stored hex-encoded. Data directories written by earlier versions
// hold unsalted SHA-256 digests; VerifyPassword falls back to that scheme
// when a record carries no salt, so existing accounts keep working.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Derivation parameters. Changing Iterations invalidates every stored hash,
// so it is a constant rather than configuration.
const (
	Iterations = 210_000
	SaltSize   = 16
	KeySize    = 32
)

// HashPassword derives a salted hash of password and returns the hash and
// the salt as hex strings.
func HashPassword(password string) (hash, salt string, err error) {
	raw := make([]byte, SaltSize)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generating salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), raw, Iterations, KeySize, sha256.New)
	return hex.EncodeToString(key), hex.EncodeToString(raw), nil
}

// VerifyPassword reports whether password matches the stored hash. An empty
// salt marks a legacy record, checked against the unsalted SHA-256 digest.
func VerifyPassword(password, hash, salt string) bool {
	if salt == "" {
		sum := sha256.Sum256([]byte(password))
		return equalHex(hex.EncodeToString(sum[:]), hash)
	}

	raw, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), raw, Iterations, KeySize, sha256.New)
	return equalHex(hex.EncodeToString(key), hash)
}

func equalHex(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
