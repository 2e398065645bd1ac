// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oncereply/b3log-solo/internal/cache"
	"github.com/oncereply/b3log-solo/internal/model"
)

// CachedQueries is a read-through cache in front of Queries for the bulk
// read paths. Caching can be disabled per instance; DisableCache returns a
// restore function so the toggle cannot leak past the calling scope even
// when the guarded query fails.
type CachedQueries struct {
	q     *Queries
	cache cache.Cache
	ttl   time.Duration

	mu      sync.Mutex
	enabled bool
}

// NewCached wraps queries with the given cache backend. Caching starts
// enabled.
func NewCached(q *Queries, c cache.Cache, ttl time.Duration) *CachedQueries {
	return &CachedQueries{
		q:       q,
		cache:   c,
		ttl:     ttl,
		enabled: true,
	}
}

// Queries exposes the underlying uncached queries.
func (c *CachedQueries) Queries() *Queries {
	return c.q
}

// Enabled reports whether result caching is currently on.
func (c *CachedQueries) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// DisableCache turns result caching off and returns a function restoring
// the previous state. Callers must defer the restore so the toggle is
// reverted on every exit path.
func (c *CachedQueries) DisableCache() (restore func()) {
	c.mu.Lock()
	prev := c.enabled
	c.enabled = false
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		c.enabled = prev
		c.mu.Unlock()
	}
}

// Invalidate drops all cached query results.
func (c *CachedQueries) Invalidate(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

// cachedList runs a list query through the cache when enabled.
func cachedList[T any](ctx context.Context, c *CachedQueries, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if !c.Enabled() {
		return fetch(ctx)
	}

	if data, err := c.cache.Get(ctx, key); err == nil {
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		// Corrupt entry, drop it and fall through to the database
		_ = c.cache.Delete(ctx, key)
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(out); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return out, nil
}

// ListPublishedArticles is the cached counterpart of
// Queries.ListPublishedArticles.
func (c *CachedQueries) ListPublishedArticles(ctx context.Context, arg ListPublishedArticlesParams) ([]model.Article, error) {
	key := fmt.Sprintf("query:articles:published:%d:%d", arg.Limit, arg.Offset)
	return cachedList(ctx, c, key, func(ctx context.Context) ([]model.Article, error) {
		return c.q.ListPublishedArticles(ctx, arg)
	})
}

// ListPages is the cached counterpart of Queries.ListPages.
func (c *CachedQueries) ListPages(ctx context.Context) ([]model.Page, error) {
	return cachedList(ctx, c, "query:pages:all", c.q.ListPages)
}

// ListTags is the cached counterpart of Queries.ListTags.
func (c *CachedQueries) ListTags(ctx context.Context) ([]model.Tag, error) {
	return cachedList(ctx, c, "query:tags:all", c.q.ListTags)
}

// ListArchiveDates is the cached counterpart of Queries.ListArchiveDates.
func (c *CachedQueries) ListArchiveDates(ctx context.Context) ([]model.ArchiveDate, error) {
	return cachedList(ctx, c, "query:archives:all", c.q.ListArchiveDates)
}
