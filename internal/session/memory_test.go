package session

import (
	"context"
	"testing"
	"time"

	"github.com/insight-hunter/insight-hunter/internal/onboarding"
)

func TestMemoryStoreAuthRoundTrip(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	ctx := context.Background()

	authed, err := store.IsAuthenticated(ctx, "sid")
	if err != nil {
		t.Fatalf("is authenticated: %v", err)
	}
	if authed {
		t.Fatal("fresh session must not be authenticated")
	}

	if err := store.SetAuthenticated(ctx, "sid", true); err != nil {
		t.Fatalf("set authenticated: %v", err)
	}
	authed, err = store.IsAuthenticated(ctx, "sid")
	if err != nil {
		t.Fatalf("is authenticated: %v", err)
	}
	if !authed {
		t.Fatal("expected authenticated session")
	}
}

func TestMemoryStoreProgressRoundTrip(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	ctx := context.Background()

	progress, err := store.Progress(ctx, "sid")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.CompletedCount() != 0 {
		t.Fatalf("fresh progress should be empty, got %d", progress.CompletedCount())
	}

	if err := store.SetProgress(ctx, "sid", progress.Complete("signin")); err != nil {
		t.Fatalf("set progress: %v", err)
	}
	progress, err = store.Progress(ctx, "sid")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !progress.IsCompleted("signin") {
		t.Fatal("expected signin to be completed")
	}
}

func TestMemoryStoreExpiryIsLazy(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.SetAuthenticated(ctx, "sid", true); err != nil {
		t.Fatalf("set authenticated: %v", err)
	}
	if err := store.SetProgress(ctx, "sid", onboarding.NewProgress().Complete("signin")); err != nil {
		t.Fatalf("set progress: %v", err)
	}

	// Progress expires after 7 days while the auth flag survives 30.
	store.now = func() time.Time { return now.Add(ProgressTTL + time.Hour) }
	progress, err := store.Progress(ctx, "sid")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.CompletedCount() != 0 {
		t.Fatal("expected progress to have expired")
	}
	authed, err := store.IsAuthenticated(ctx, "sid")
	if err != nil {
		t.Fatalf("is authenticated: %v", err)
	}
	if !authed {
		t.Fatal("auth flag should outlive progress")
	}

	store.now = func() time.Time { return now.Add(AuthTTL + time.Hour) }
	authed, err = store.IsAuthenticated(ctx, "sid")
	if err != nil {
		t.Fatalf("is authenticated: %v", err)
	}
	if authed {
		t.Fatal("auth flag should expire after its TTL")
	}
}

func TestMemoryStoreClear(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetAuthenticated(ctx, "sid", true); err != nil {
		t.Fatalf("set authenticated: %v", err)
	}
	if err := store.SetProgress(ctx, "sid", onboarding.NewProgress().Complete("signin")); err != nil {
		t.Fatalf("set progress: %v", err)
	}
	if err := store.Clear(ctx, "sid"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	authed, _ := store.IsAuthenticated(ctx, "sid")
	if authed {
		t.Fatal("clear must drop the auth flag")
	}
	progress, _ := store.Progress(ctx, "sid")
	if progress.CompletedCount() != 0 {
		t.Fatal("clear must drop progress")
	}
}

func TestMemoryStoreIncrementWithTTL(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	for want := int64(1); want <= 3; want++ {
		got, err := store.IncrementWithTTL(ctx, "rate:1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got != want {
			t.Fatalf("count = %d, want %d", got, want)
		}
	}

	// The window resets once the TTL passes.
	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	got, err := store.IncrementWithTTL(ctx, "rate:1.2.3.4", time.Minute)
	if err != nil {
		t.Fatalf("increment after expiry: %v", err)
	}
	if got != 1 {
		t.Fatalf("count after expiry = %d, want 1", got)
	}
}

func TestNewIDShapeAndUniqueness(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		id := NewID()
		if len(id) != 32 {
			t.Fatalf("id length = %d, want 32 hex chars", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
