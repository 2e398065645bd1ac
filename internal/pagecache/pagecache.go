// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pagecache holds the in-memory page-hit cache the request-serving
// paths write into and the statistics synchronizer drains. It also carries
// the cached blog-wide statistic aggregate.
package pagecache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/oncereply/b3log-solo/internal/model"
)

// Entry is a cached page record. HitCount is incremented by request
// serving and reset to zero by the statistics flush; the reset racing a
// concurrent increment can lose at most one flush cycle of hits, which is
// an accepted approximation.
type Entry struct {
	Key      string
	Type     string // localized page-type label ("article", tag page, ...)
	ObjectID string // backing entity id, the article id for article pages
	Title    string

	hitCount atomic.Int64
	cachedAt time.Time
}

// HitCount returns the current hit count.
func (e *Entry) HitCount() int64 {
	return e.hitCount.Load()
}

// AddHit increments the hit count by one.
func (e *Entry) AddHit() {
	e.hitCount.Add(1)
}

// ResetHits sets the hit count back to zero.
func (e *Entry) ResetHits() {
	e.hitCount.Store(0)
}

// Manager owns the page-hit entries and the blog-wide statistic slot.
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	maxAge  time.Duration

	statMu sync.RWMutex
	stat   *model.Statistic
}

// NewManager creates an empty page cache. Entries older than maxAge are
// dropped by RemoveExpired; maxAge 0 disables expiry.
func NewManager(maxAge time.Duration) *Manager {
	return &Manager{
		entries: make(map[string]*Entry),
		maxAge:  maxAge,
	}
}

// Put registers a page entry, replacing any previous entry with the same
// key. The new entry starts with a zero hit count.
func (m *Manager) Put(key, pageType, objectID, title string) *Entry {
	e := &Entry{
		Key:      key,
		Type:     pageType,
		ObjectID: objectID,
		Title:    title,
		cachedAt: time.Now(),
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return e
}

// Get returns the entry for key, or false when absent.
func (m *Manager) Get(key string) (*Entry, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	return e, ok
}

// Remove evicts the entry for key.
func (m *Manager) Remove(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Keys returns a snapshot of all resident cache keys.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of resident entries.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RemoveExpired evicts entries older than the configured max age and
// returns the number removed.
func (m *Manager) RemoveExpired() int {
	if m.maxAge <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-m.maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k, e := range m.entries {
		if e.cachedAt.Before(cutoff) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

// Statistic returns the cached blog-wide statistic, or false when no
// statistic has been cached yet.
func (m *Manager) Statistic() (model.Statistic, bool) {
	m.statMu.RLock()
	defer m.statMu.RUnlock()

	if m.stat == nil {
		return model.Statistic{}, false
	}
	return *m.stat, true
}

// SetStatistic caches the blog-wide statistic.
func (m *Manager) SetStatistic(stat model.Statistic) {
	m.statMu.Lock()
	m.stat = &stat
	m.statMu.Unlock()
}

// AddBlogView increments the cached blog view counter. A no-op until the
// statistic has been seeded with SetStatistic.
func (m *Manager) AddBlogView() {
	m.statMu.Lock()
	if m.stat != nil {
		m.stat.BlogViewCount++
	}
	m.statMu.Unlock()
}
