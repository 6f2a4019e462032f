// Package session issues and verifies the signed tokens that prove local
// account identity.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer with the given signing secret and token ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token for the account and returns it together with
// its absolute expiry as a Unix timestamp.
func (i *Issuer) Issue(accountID string) (string, int64, error) {
	now := i.now()
	expires := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", 0, err
	}
	return token, expires.Unix(), nil
}

// Verify decodes the token and returns its subject. Every failure mode (bad
// signature, expired, malformed, wrong algorithm, missing subject) collapses
// into the single not-ok outcome; the cause is never surfaced to the caller.
func (i *Issuer) Verify(token string) (string, bool) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
