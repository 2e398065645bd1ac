package store

import (
	"context"
	"testing"
	"time"

	"github.com/oncereply/b3log-solo/internal/cache"
)

func testCached(t *testing.T) *CachedQueries {
	t.Helper()

	c := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return NewCached(New(testDB(t)), c, time.Minute)
}

func TestCachedListServesFromCache(t *testing.T) {
	cq := testCached(t)
	ctx := context.Background()

	if err := cq.Queries().CreateTag(ctx, "t1", "golang"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	tags, err := cq.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("ListTags length = %d, want 1", len(tags))
	}

	// Second tag is invisible until the cache is invalidated.
	if err := cq.Queries().CreateTag(ctx, "t2", "sqlite"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	tags, err = cq.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("cached ListTags length = %d, want 1", len(tags))
	}

	if err := cq.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	tags, err = cq.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("ListTags after invalidate = %d, want 2", len(tags))
	}
}

func TestDisableCacheBypassesAndRestores(t *testing.T) {
	cq := testCached(t)
	ctx := context.Background()

	if err := cq.Queries().CreateTag(ctx, "t1", "golang"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if _, err := cq.ListTags(ctx); err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if err := cq.Queries().CreateTag(ctx, "t2", "sqlite"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	restore := cq.DisableCache()
	if cq.Enabled() {
		t.Error("Enabled() = true after DisableCache")
	}

	tags, err := cq.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("uncached ListTags length = %d, want 2", len(tags))
	}

	restore()
	if !cq.Enabled() {
		t.Error("Enabled() = false after restore")
	}

	// The stale cached result is served again once restored.
	tags, err = cq.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("restored ListTags length = %d, want 1", len(tags))
	}
}

func TestDisableCacheNested(t *testing.T) {
	cq := testCached(t)

	restoreOuter := cq.DisableCache()
	restoreInner := cq.DisableCache()

	restoreInner()
	if cq.Enabled() {
		t.Error("inner restore re-enabled the cache while outer scope is active")
	}
	restoreOuter()
	if !cq.Enabled() {
		t.Error("outer restore did not re-enable the cache")
	}
}

func TestCachedCorruptEntryFallsThrough(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	cq := NewCached(New(testDB(t)), c, time.Minute)
	ctx := context.Background()

	if err := cq.Queries().CreateTag(ctx, "t1", "golang"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := c.Set(ctx, "query:tags:all", []byte("{not json"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tags, err := cq.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Title != "golang" {
		t.Errorf("ListTags = %+v", tags)
	}
}
