package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims used across the service. Access tokens carry
// the denormalized profile fields so request handling does not need a store
// round trip; refresh tokens carry only the subject.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(
	subject, username, email, fullName string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	c := newBaseClaims(subject, ttl, issuer, now)
	c.Username = username
	c.Email = email
	c.FullName = fullName
	return c
}

// NewRefreshClaims builds claims for a refresh token. Only the subject is
// embedded; everything else is resolved from the store when the token is
// presented.
func NewRefreshClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return newBaseClaims(subject, ttl, issuer, now)
}

func newBaseClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
