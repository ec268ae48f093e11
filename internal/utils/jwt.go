package utils // package utils holds password hashing and session token helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by ParseSessionToken for any token that is
// malformed, badly signed, expired or missing its subject.
var ErrInvalidToken = errors.New("invalid session token")

// sessionIssuer is written to and required in the iss claim.
const sessionIssuer = "trackforge"

// NewSessionToken signs an HS256 JWT whose subject is the logged-in username.
// The token expires ttl from now.
func NewSessionToken(secret, username string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates raw against secret and returns the username
// stored in its subject claim.
func ParseSessionToken(secret, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
