package onboarding

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when a mutation requires an authenticated
// session and the session is not signed in.
var ErrUnauthorized = errors.New("session is not authenticated")

// ErrUnknownStep is returned when a completion names a slug outside the
// canonical sequence.
var ErrUnknownStep = errors.New("unknown onboarding step")

// SessionStore is the narrow session contract the sequencer needs.
type SessionStore interface {
	IsAuthenticated(ctx context.Context, sessionID string) (bool, error)
	Progress(ctx context.Context, sessionID string) (Progress, error)
	SetProgress(ctx context.Context, sessionID string, progress Progress) error
}

// Access is the step-view authorization decision.
type Access struct {
	Allowed bool
	// Redirect is the slug to send the session to when access is denied.
	Redirect string
}

// Sequencer enforces onboarding progression rules over a session store.
//
// Progress updates are read-modify-write against an external store without
// compare-and-swap; concurrent completions for one session race and the last
// write wins. That weak-consistency tradeoff is accepted here and exercised
// explicitly in the tests.
type Sequencer struct {
	seq      Sequence
	sessions SessionStore
}

// NewSequencer builds a Sequencer for the canonical sequence.
func NewSequencer(seq Sequence, sessions SessionStore) *Sequencer {
	return &Sequencer{seq: seq, sessions: sessions}
}

// Sequence returns the canonical sequence.
func (s *Sequencer) Sequence() Sequence {
	return s.seq
}

// Next returns the slug the session should visit next.
func (s *Sequencer) Next(ctx context.Context, sessionID string) (string, error) {
	progress, err := s.sessions.Progress(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("read progress: %w", err)
	}
	return ComputeNext(s.seq, progress), nil
}

// MarkComplete records slug as completed and returns the recomputed next
// slug.
//
// Completing any slug other than the entry step requires an authenticated
// session. Completion is idempotent: re-completing a slug only recomputes
// the next pointer. Any explicit next override is consumed by the
// completion, so the recomputed pointer reflects actual progress.
func (s *Sequencer) MarkComplete(ctx context.Context, sessionID, slug string) (string, error) {
	if !s.seq.Contains(slug) {
		return "", fmt.Errorf("complete %q: %w", slug, ErrUnknownStep)
	}
	if slug != s.seq.Entry() {
		authed, err := s.sessions.IsAuthenticated(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("read auth flag: %w", err)
		}
		if !authed {
			return "", fmt.Errorf("complete %q: %w", slug, ErrUnauthorized)
		}
	}

	progress, err := s.sessions.Progress(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("read progress: %w", err)
	}
	progress = progress.Complete(slug)
	progress.Next = ""
	next := ComputeNext(s.seq, progress)
	progress.Next = next
	if err := s.sessions.SetProgress(ctx, sessionID, progress); err != nil {
		return "", fmt.Errorf("write progress: %w", err)
	}
	return next, nil
}

// AuthorizeStepAccess decides whether the session may view requested.
//
// Unauthenticated sessions only ever see the entry step. Authenticated
// sessions may view their computed next step or anything at or before the
// first incomplete step, but never skip ahead of it. A requested slug
// outside the canonical sequence is treated as the entry step for guard
// purposes; the router still 404s it when the catalog has no such step.
func (s *Sequencer) AuthorizeStepAccess(ctx context.Context, sessionID, requested string) (Access, error) {
	if requested != s.seq.Entry() {
		authed, err := s.sessions.IsAuthenticated(ctx, sessionID)
		if err != nil {
			return Access{}, fmt.Errorf("read auth flag: %w", err)
		}
		if !authed {
			return Access{Redirect: s.seq.Entry()}, nil
		}
	}

	progress, err := s.sessions.Progress(ctx, sessionID)
	if err != nil {
		return Access{}, fmt.Errorf("read progress: %w", err)
	}

	requestedIdx, known := s.seq.Index(requested)
	if !known {
		requestedIdx = 0
	}
	next := ComputeNext(s.seq, progress)
	if requested == next || requestedIdx <= firstIncompleteIndex(s.seq, progress) {
		return Access{Allowed: true}, nil
	}
	return Access{Redirect: next}, nil
}
