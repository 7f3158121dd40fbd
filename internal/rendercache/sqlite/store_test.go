package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/insight-hunter/insight-hunter/internal/rendercache"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestGetMissingEntry(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	_, ok, err := store.Get(context.Background(), rendercache.Key{Slug: "signin", TemplateVersion: "v1"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss for empty store")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	entry := rendercache.Entry{
		Key:         rendercache.Key{Slug: "reports", TemplateVersion: "v2"},
		Page:        []byte("<html>reports</html>"),
		RefreshedAt: now,
		ExpiresAt:   now.Add(time.Minute),
	}
	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, entry.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got.Page) != string(entry.Page) {
		t.Fatalf("page = %q, want %q", got.Page, entry.Page)
	}
	if !got.ExpiresAt.Equal(entry.ExpiresAt) {
		t.Fatalf("expires = %v, want %v", got.ExpiresAt, entry.ExpiresAt)
	}
	if got.ServedStale {
		t.Fatal("fresh entry must not be marked served-stale")
	}
}

func TestPutUpsertsByKey(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	key := rendercache.Key{Slug: "alerts", TemplateVersion: "v1"}
	now := time.Now().UTC()
	first := rendercache.Entry{Key: key, Page: []byte("one"), RefreshedAt: now, ExpiresAt: now.Add(time.Minute)}
	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("put first: %v", err)
	}

	second := first
	second.Page = []byte("two")
	second.ServedStale = true
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get after upsert: ok=%v err=%v", ok, err)
	}
	if string(got.Page) != "two" {
		t.Fatalf("page = %q, want %q", got.Page, "two")
	}
	if !got.ServedStale {
		t.Fatal("served-stale flag must round-trip")
	}
}

func TestVersionsAreSeparateRows(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	v1 := rendercache.Entry{
		Key: rendercache.Key{Slug: "signin", TemplateVersion: "v1"}, Page: []byte("v1"),
		RefreshedAt: now, ExpiresAt: now.Add(time.Minute),
	}
	if err := store.Put(ctx, v1); err != nil {
		t.Fatalf("put v1: %v", err)
	}

	_, ok, err := store.Get(ctx, rendercache.Key{Slug: "signin", TemplateVersion: "v2"})
	if err != nil {
		t.Fatalf("get v2: %v", err)
	}
	if ok {
		t.Fatal("a v1 entry must never satisfy a v2 read")
	}
}

func TestPutRejectsEmptyPage(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	err := store.Put(context.Background(), rendercache.Entry{
		Key: rendercache.Key{Slug: "signin", TemplateVersion: "v1"},
	})
	if err == nil {
		t.Fatal("expected error for empty page")
	}
}
