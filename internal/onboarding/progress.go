package onboarding

// Progress is the per-session onboarding record.
//
// Completed has set semantics; Next is an optional explicit override that
// wins over the computed first-incomplete step for exactly one recompute.
type Progress struct {
	Completed map[string]bool `json:"completed,omitempty"`
	Next      string          `json:"next,omitempty"`
}

// NewProgress returns empty progress.
func NewProgress() Progress {
	return Progress{Completed: map[string]bool{}}
}

// IsCompleted reports whether slug has been completed.
func (p Progress) IsCompleted(slug string) bool {
	return p.Completed[slug]
}

// Complete returns progress with slug added to the completed set.
func (p Progress) Complete(slug string) Progress {
	completed := make(map[string]bool, len(p.Completed)+1)
	for s, done := range p.Completed {
		if done {
			completed[s] = true
		}
	}
	completed[slug] = true
	return Progress{Completed: completed, Next: p.Next}
}

// CompletedCount returns the number of completed slugs.
func (p Progress) CompletedCount() int {
	n := 0
	for _, done := range p.Completed {
		if done {
			n++
		}
	}
	return n
}

// ComputeNext returns the slug the session should visit next.
//
// An explicit Next override wins when it names a member of the sequence.
// Otherwise the first canonical slug missing from the completed set is next,
// and the terminal slug once everything is complete. Pure function; callers
// persist the result themselves.
func ComputeNext(seq Sequence, progress Progress) string {
	if progress.Next != "" && seq.Contains(progress.Next) {
		return progress.Next
	}
	for _, slug := range seq.slugs {
		if !progress.IsCompleted(slug) {
			return slug
		}
	}
	return seq.Terminal()
}

// firstIncompleteIndex returns the canonical index of the first incomplete
// step, or the terminal index when every step is complete.
func firstIncompleteIndex(seq Sequence, progress Progress) int {
	for i, slug := range seq.slugs {
		if !progress.IsCompleted(slug) {
			return i
		}
	}
	return len(seq.slugs) - 1
}
