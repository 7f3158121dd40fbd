// Package catalog provides read access to onboarding step content.
//
// Step content is authored externally and stored in a relational steps
// table; the core only ever reads it. The catalog's next_slug pointers are
// presentation data (the "continue" link) and are reconciled against the
// canonical sequence at startup.
package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no step exists for a slug.
var ErrNotFound = errors.New("step not found")

// Step is one immutable catalog entry.
type Step struct {
	Slug     string
	Title    string
	BodyHTML string
	CTALabel string
	// NextSlug is the forward pointer; empty for the terminal step.
	NextSlug string
}

// Catalog looks up step content.
type Catalog interface {
	// Step returns the step for slug, or ErrNotFound.
	Step(ctx context.Context, slug string) (Step, error)
	// NextChain returns the slug → next_slug pointer map for every step,
	// used by the startup consistency check.
	NextChain(ctx context.Context) (map[string]string, error)
}
