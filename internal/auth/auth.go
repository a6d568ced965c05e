// Package auth issues and verifies the bearer tokens internal/httpapi uses
// to identify a user, grounded on the original service's authentication
// module (named in its main.rs as pub mod authentication).
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for any token that doesn't parse,
// fails signature verification, or has expired.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// claims is the JWT payload identifying a user.
type claims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens with a single HMAC key. TTL
// bounds how long an issued token remains valid.
type Issuer struct {
	key []byte
	ttl time.Duration
}

// NewIssuer returns an Issuer signing with key and issuing tokens valid for
// ttl. A zero ttl defaults to 24 hours.
func NewIssuer(key []byte, ttl time.Duration) Issuer {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return Issuer{key: key, ttl: ttl}
}

// Issue returns a signed bearer token identifying userID.
func (iss Issuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(iss.ttl)),
		},
	})
	return token.SignedString(iss.key)
}

// Verify parses and validates a bearer token, returning the user it
// identifies.
func (iss Issuer) Verify(token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return iss.key, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.UUID{}, ErrInvalidToken
	}
	c, ok := parsed.Claims.(*claims)
	if !ok {
		return uuid.UUID{}, ErrInvalidToken
	}
	return c.UserID, nil
}
