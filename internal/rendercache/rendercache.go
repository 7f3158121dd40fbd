// Package rendercache caches fully rendered step pages.
//
// Entries are content-addressed by (slug, template version), so bumping the
// template version invalidates every cached render at once without touching
// the store. Within the freshness window a cached page is served as-is; past
// it the cache serves the stale page at most once while a background refresh
// runs (stale-while-revalidate). Store writes never block a response.
package rendercache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultFreshness is the window a rendered page is served without
// re-rendering.
const DefaultFreshness = 60 * time.Second

// Key addresses one cached render.
type Key struct {
	Slug            string
	TemplateVersion string
}

// String renders the storage key.
func (k Key) String() string {
	return "render:" + k.Slug + "@" + k.TemplateVersion
}

// Entry is one cached page plus freshness metadata.
type Entry struct {
	Key         Key
	Page        []byte
	RefreshedAt time.Time
	ExpiresAt   time.Time
	// ServedStale records that the entry has been served once past its
	// freshness window; the next request renders synchronously.
	ServedStale bool
}

// Store persists cache entries. A failing store degrades the cache to a
// pass-through; it never fails a request.
type Store interface {
	Get(ctx context.Context, key Key) (Entry, bool, error)
	Put(ctx context.Context, entry Entry) error
}

// Renderer produces the page bytes for a cache key on miss or refresh.
type Renderer func(ctx context.Context) ([]byte, error)

// Cache serves rendered pages through a backing store.
type Cache struct {
	store     Store
	freshness time.Duration
	group     singleflight.Group
	now       func() time.Time
	logf      func(format string, args ...any)
	// mu guards staleServed, the keys whose stale page has been handed
	// out this window. The set is consulted before the background
	// ServedStale write lands, so a slow store cannot let a second
	// request ride the same stale entry.
	mu          sync.Mutex
	staleServed map[string]struct{}
	// afterRefresh, when set, runs once a background refresh settles.
	// Tests use it to wait for fire-and-forget writes.
	afterRefresh func()
}

// New builds a Cache over store with the given freshness window.
func New(store Store, freshness time.Duration) *Cache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Cache{
		store:       store,
		freshness:   freshness,
		now:         time.Now,
		logf:        log.Printf,
		staleServed: make(map[string]struct{}),
	}
}

// Serve returns the page for key, rendering it when no fresh copy exists.
//
// The freshly rendered page is always returned to the caller regardless of
// whether the background store write succeeds.
func (c *Cache) Serve(ctx context.Context, key Key, render Renderer) ([]byte, error) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		// A broken cache backend is a miss, not a failure.
		c.logf("render cache get %s: %v", key, err)
		ok = false
	}

	now := c.now()
	if ok && now.Before(entry.ExpiresAt) {
		return entry.Page, nil
	}

	if ok && !entry.ServedStale && c.markStaleServed(key) {
		// Serve the stale page once and refresh behind the response.
		c.refreshAsync(ctx, entry, render)
		return entry.Page, nil
	}

	page, err := render(ctx)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", key.Slug, err)
	}
	c.storeAsync(ctx, c.freshEntry(key, page))
	return page, nil
}

// Put stores a rendered page synchronously. The seeder and tests use it;
// request paths go through Serve.
func (c *Cache) Put(ctx context.Context, key Key, page []byte) error {
	if err := c.store.Put(ctx, c.freshEntry(key, page)); err != nil {
		return err
	}
	c.clearStaleServed(key)
	return nil
}

// markStaleServed claims the single stale serve for key. It returns false
// once another request has already claimed it this window.
func (c *Cache) markStaleServed(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, claimed := c.staleServed[key.String()]; claimed {
		return false
	}
	c.staleServed[key.String()] = struct{}{}
	return true
}

// clearStaleServed releases the claim once a fresh entry is readable from
// the store. A failed refresh keeps the claim, forcing synchronous renders
// until one succeeds.
func (c *Cache) clearStaleServed(key Key) {
	c.mu.Lock()
	delete(c.staleServed, key.String())
	c.mu.Unlock()
}

func (c *Cache) freshEntry(key Key, page []byte) Entry {
	now := c.now()
	return Entry{
		Key:         key,
		Page:        page,
		RefreshedAt: now,
		ExpiresAt:   now.Add(c.freshness),
	}
}

// storeAsync persists an entry without blocking the response. Failures are
// logged and never propagate to the caller.
func (c *Cache) storeAsync(ctx context.Context, entry Entry) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := c.store.Put(ctx, entry); err != nil {
			c.logf("render cache put %s: %v", entry.Key, err)
			return
		}
		c.clearStaleServed(entry.Key)
	}()
}

// refreshAsync marks the entry as served-stale and re-renders the page
// behind the response. Concurrent refreshes for one key collapse into a
// single render; the marker write is ordered before the fresh write so a
// failed render still leaves the entry flagged for a synchronous retry.
func (c *Cache) refreshAsync(ctx context.Context, stale Entry, render Renderer) {
	ctx = context.WithoutCancel(ctx)
	key := stale.Key
	go func() {
		_, err, _ := c.group.Do(key.String(), func() (any, error) {
			marked := stale
			marked.ServedStale = true
			if err := c.store.Put(ctx, marked); err != nil {
				c.logf("render cache mark stale %s: %v", key, err)
			}
			page, err := render(ctx)
			if err != nil {
				return nil, err
			}
			return nil, c.store.Put(ctx, c.freshEntry(key, page))
		})
		if err != nil {
			c.logf("render cache refresh %s: %v", key, err)
		} else {
			c.clearStaleServed(key)
		}
		if c.afterRefresh != nil {
			c.afterRefresh()
		}
	}()
}
