// Package onboarding implements the onboarding step sequencer.
//
// A session moves through a fixed, ordered list of steps. The sequencer owns
// the progression rules: which step comes next, which steps a session may
// view, and how completion events mutate per-session progress. Step content
// is external; only slugs flow through this package.
package onboarding

import (
	"fmt"
	"strings"
)

// DefaultSlugs is the canonical progression order for the product tour.
var DefaultSlugs = []string{
	"signin",
	"connect-data",
	"business-setup",
	"settings-setup",
	"dashboard-preview",
	"analytics-trends",
	"profiles",
	"reports",
	"forecasting",
	"alerts",
	"assistant",
}

// Sequence is the canonical ordered list of step slugs.
//
// It is built once at process start and treated as immutable; the catalog's
// next_slug pointers are reconciled against it during startup and only ever
// drive the rendered "continue" link.
type Sequence struct {
	slugs []string
	index map[string]int
}

// NewSequence builds a Sequence from ordered slugs.
func NewSequence(slugs []string) (Sequence, error) {
	if len(slugs) == 0 {
		return Sequence{}, fmt.Errorf("sequence requires at least one slug")
	}
	index := make(map[string]int, len(slugs))
	clean := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			return Sequence{}, fmt.Errorf("sequence slug is empty")
		}
		if _, dup := index[slug]; dup {
			return Sequence{}, fmt.Errorf("sequence slug %q is duplicated", slug)
		}
		index[slug] = len(clean)
		clean = append(clean, slug)
	}
	return Sequence{slugs: clean, index: index}, nil
}

// DefaultSequence returns the canonical sequence for DefaultSlugs.
func DefaultSequence() Sequence {
	seq, err := NewSequence(DefaultSlugs)
	if err != nil {
		panic(fmt.Sprintf("default sequence: %v", err))
	}
	return seq
}

// Entry returns the first slug in canonical order.
func (s Sequence) Entry() string {
	return s.slugs[0]
}

// Terminal returns the last slug in canonical order.
func (s Sequence) Terminal() string {
	return s.slugs[len(s.slugs)-1]
}

// Len returns the number of steps.
func (s Sequence) Len() int {
	return len(s.slugs)
}

// Slugs returns a copy of the ordered slugs.
func (s Sequence) Slugs() []string {
	out := make([]string, len(s.slugs))
	copy(out, s.slugs)
	return out
}

// Index returns the canonical position of slug.
func (s Sequence) Index(slug string) (int, bool) {
	idx, ok := s.index[slug]
	return idx, ok
}

// Contains reports whether slug is part of the sequence.
func (s Sequence) Contains(slug string) bool {
	_, ok := s.index[slug]
	return ok
}

// VerifyChain reconciles the sequence against a slug → next-slug pointer
// chain (the catalog's next_slug column).
//
// The two orderings are authored independently and can drift; startup fails
// loudly instead of silently preferring one. The terminal step must have an
// empty next pointer and every other step must point at its canonical
// successor.
func VerifyChain(seq Sequence, next map[string]string) error {
	for i, slug := range seq.slugs {
		pointer, ok := next[slug]
		if !ok {
			return fmt.Errorf("catalog is missing step %q", slug)
		}
		if i == len(seq.slugs)-1 {
			if pointer != "" {
				return fmt.Errorf("terminal step %q points at %q, want no next step", slug, pointer)
			}
			continue
		}
		if want := seq.slugs[i+1]; pointer != want {
			return fmt.Errorf("step %q points at %q, want %q", slug, pointer, want)
		}
	}
	for slug := range next {
		if !seq.Contains(slug) {
			return fmt.Errorf("catalog step %q is not part of the canonical sequence", slug)
		}
	}
	return nil
}
