package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// prehash digests plain to a fixed 44-byte value so passwords of any length
// fit under bcrypt's 72-byte input limit without truncation.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword returns a salted bcrypt hash of plain using the given cost.
// Two calls with the same input never produce the same hash.  Passwords of
// any length are accepted.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword(prehash(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// A malformed hash never matches.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain)) == nil
}
