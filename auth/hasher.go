package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Changing these invalidates every stored credential, so
// they are fixed constants rather than configuration.
const (
	hashIterations = 25000
	hashKeyLength  = 64
	saltLength     = 32
)

// HashPassword derives a salted PBKDF2-SHA256 hash from a plaintext secret.
// It returns the hex-encoded hash and the hex-encoded per-user salt. The
// plaintext never leaves this function.
func HashPassword(password string) (hash string, salt string, err error) {
	rawSalt := make([]byte, saltLength)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), rawSalt, hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key), hex.EncodeToString(rawSalt), nil
}

// VerifyPassword reports whether the plaintext secret matches the stored
// hash under the stored salt. A mismatch is a boolean outcome, not an error;
// the error return covers only malformed stored values. Comparison is
// constant-time.
func VerifyPassword(password, hash, salt string) (bool, error) {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return false, fmt.Errorf("stored salt is not valid hex: %w", err)
	}
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return false, fmt.Errorf("stored hash is not valid hex: %w", err)
	}

	key := pbkdf2.Key([]byte(password), rawSalt, hashIterations, hashKeyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
