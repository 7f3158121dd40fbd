// Package session persists per-session state in a key-value store.
//
// A session is identified by an opaque crypto-random token carried in a
// cookie. The store keeps two records per session with independent
// lifetimes: the auth flag (30 days) and onboarding progress (7 days).
// Nothing else in the system touches the key-value namespace directly.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/insight-hunter/insight-hunter/internal/onboarding"
)

const (
	// AuthTTL bounds how long a signed-in session stays authenticated.
	AuthTTL = 30 * 24 * time.Hour
	// ProgressTTL bounds how long onboarding progress survives.
	ProgressTTL = 7 * 24 * time.Hour
)

// Store is the session persistence contract.
type Store interface {
	IsAuthenticated(ctx context.Context, sessionID string) (bool, error)
	SetAuthenticated(ctx context.Context, sessionID string, authenticated bool) error
	Progress(ctx context.Context, sessionID string) (onboarding.Progress, error)
	SetProgress(ctx context.Context, sessionID string, progress onboarding.Progress) error
	// Clear removes the auth flag and progress for a session (sign-out).
	Clear(ctx context.Context, sessionID string) error
	// IncrementWithTTL bumps a counter key, starting its TTL on first
	// increment. Used by the per-IP rate limiter, which shares the
	// session namespace.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// NewID mints a cryptographically random session identifier (128 bits).
func NewID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
