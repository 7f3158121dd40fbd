package session

import (
	"context"
	"sync"
	"time"

	"github.com/insight-hunter/insight-hunter/internal/onboarding"
)

// MemoryStore is a thread-safe in-memory Store.
//
// It backs local development and tests; deployments point at Redis. Expiry
// is enforced lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	now      func() time.Time
	auth     map[string]memoryEntry[bool]
	progress map[string]memoryEntry[onboarding.Progress]
	counters map[string]memoryEntry[int64]
}

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e memoryEntry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:      time.Now,
		auth:     make(map[string]memoryEntry[bool]),
		progress: make(map[string]memoryEntry[onboarding.Progress]),
		counters: make(map[string]memoryEntry[int64]),
	}
}

// IsAuthenticated reads the auth flag; absent or expired means false.
func (s *MemoryStore) IsAuthenticated(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	entry, ok := s.auth[sessionID]
	s.mu.RUnlock()
	if !ok || entry.expired(s.now()) {
		return false, nil
	}
	return entry.value, nil
}

// SetAuthenticated writes the auth flag with the auth TTL.
func (s *MemoryStore) SetAuthenticated(_ context.Context, sessionID string, authenticated bool) error {
	s.mu.Lock()
	s.auth[sessionID] = memoryEntry[bool]{value: authenticated, expiresAt: s.now().Add(AuthTTL)}
	s.mu.Unlock()
	return nil
}

// Progress reads onboarding progress; absent or expired means empty.
func (s *MemoryStore) Progress(_ context.Context, sessionID string) (onboarding.Progress, error) {
	s.mu.RLock()
	entry, ok := s.progress[sessionID]
	s.mu.RUnlock()
	if !ok || entry.expired(s.now()) {
		return onboarding.NewProgress(), nil
	}
	return entry.value, nil
}

// SetProgress writes onboarding progress with the progress TTL.
func (s *MemoryStore) SetProgress(_ context.Context, sessionID string, progress onboarding.Progress) error {
	s.mu.Lock()
	s.progress[sessionID] = memoryEntry[onboarding.Progress]{value: progress, expiresAt: s.now().Add(ProgressTTL)}
	s.mu.Unlock()
	return nil
}

// Clear removes the auth flag and progress for a session.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.auth, sessionID)
	delete(s.progress, sessionID)
	s.mu.Unlock()
	return nil
}

// IncrementWithTTL bumps a counter, starting its TTL on the first bump.
func (s *MemoryStore) IncrementWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	entry, ok := s.counters[key]
	if !ok || entry.expired(now) {
		entry = memoryEntry[int64]{expiresAt: now.Add(ttl)}
	}
	entry.value++
	s.counters[key] = entry
	return entry.value, nil
}
