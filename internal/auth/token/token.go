// Package token signs and verifies API bearer tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "insight-hunter"
	audience = "user"
	lifetime = 2 * time.Hour
)

// ErrInvalidToken is returned for tokens that fail verification for any
// reason; callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified token payload.
type Claims struct {
	Subject string
	Role    string
}

type signedClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Signer mints and verifies HS256 tokens.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner builds a Signer from a shared secret.
func NewSigner(secret string) (*Signer, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("token secret must be at least 16 bytes")
	}
	return &Signer{secret: []byte(secret), now: time.Now}, nil
}

// Sign mints a token for subject with the given role.
func (s *Signer) Sign(subject, role string) (string, error) {
	now := s.now()
	claims := signedClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return raw, nil
}

// Verify checks signature, issuer, audience, and expiry.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims signedClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Subject: claims.Subject, Role: claims.Role}, nil
}
