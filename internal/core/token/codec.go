// Package token implements the session token codec: signed, time-bounded
// JWTs binding a subject to an issue/expiry window. Tokens are stateless;
// validity is determined entirely by signature and expiry at verification
// time, never by server-side state.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the HTTP cookie carrying the session token.
const CookieName = "jwt"

// minSecretLen is the floor for the HS256 signing key. Anything shorter is
// a startup configuration error, not a runtime condition.
const minSecretLen = 32

// DefaultTTL is the session lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

var (
	ErrWeakSecret   = errors.New("token: signing secret missing or shorter than 32 bytes")
	ErrInvalidToken = errors.New("token: invalid or expired")
)

// Codec signs and verifies session tokens with a process-wide HS256 secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec validates the signing secret and returns a Codec. A missing or
// weak secret is rejected so the service fails at startup rather than
// issuing forgeable tokens.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue creates a signed token for subject, valid from now until now+TTL.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry against now and returns the subject.
// Malformed input, a wrong signing method, a bad signature, and an expired
// token all collapse into ErrInvalidToken; callers treat them identically.
func (c *Codec) Verify(tokenStr string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
