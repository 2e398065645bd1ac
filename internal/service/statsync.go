// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/oncereply/b3log-solo/internal/pagecache"
	"github.com/oncereply/b3log-solo/internal/store"
)

// FlushSize is the maximum number of page-cache entries reconciled per
// flush invocation.
const FlushSize = 30

// StatSync reconciles the in-memory visit counters with durable storage.
// Flush is safe to invoke concurrently with request traffic; atomicity is
// delegated to the database transaction.
type StatSync struct {
	db           *sql.DB
	cached       *store.CachedQueries
	pages        *pagecache.Manager
	articleLabel string // localized page-type label marking article entries
	logger       *slog.Logger
}

// NewStatSync creates a statistics synchronizer. articleLabel is the
// localized page-type label article cache entries are tagged with.
func NewStatSync(db *sql.DB, cached *store.CachedQueries, pages *pagecache.Manager, articleLabel string, logger *slog.Logger) *StatSync {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatSync{
		db:           db,
		cached:       cached,
		pages:        pages,
		articleLabel: articleLabel,
		logger:       logger,
	}
}

// Flush writes the cached blog-wide statistic and a bounded random sample
// of article hit counters back to the database in a single transaction.
// When no statistic is cached the flush is a no-op. On any repository error
// the transaction is rolled back and every in-memory counter is left
// untouched, so the next scheduled flush retries with the same counts.
func (s *StatSync) Flush(ctx context.Context) error {
	stat, ok := s.pages.Statistic()
	if !ok {
		s.logger.Info("no cached statistic, skipping flush")
		return nil
	}

	// Reads inside the transaction must see the rows being written.
	restore := s.cached.DisableCache()
	defer restore()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("stat flush", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := store.New(s.db).WithTx(tx)

	if err := q.UpsertStatistic(ctx, stat); err != nil {
		s.logger.Error("writing blog statistic failed", "error", err)
		return wrapErr("stat flush", err)
	}

	// Entries whose counters become durable with this commit; reset only
	// after the commit succeeds so a rollback never drops hits.
	var flushed []*pagecache.Entry
	processed := 0

	for _, key := range sampleKeys(s.pages.Keys(), FlushSize) {
		entry, ok := s.pages.Get(key)
		if !ok {
			// Evicted between enumeration and lookup
			continue
		}
		if entry.Type != s.articleLabel {
			continue
		}

		article, err := q.GetArticleByID(ctx, entry.ObjectID)
		if errors.Is(err, sql.ErrNoRows) {
			// Article deleted concurrently
			continue
		}
		if err != nil {
			s.logger.Error("loading article failed", "article_id", entry.ObjectID, "error", err)
			return wrapErr("stat flush", err)
		}

		hits := entry.HitCount()
		if err := q.UpdateArticleStats(ctx, store.UpdateArticleStatsParams{
			ViewCount:   article.ViewCount + hits,
			RandomValue: rand.Float64(),
			ID:          article.ID,
		}); err != nil {
			s.logger.Error("updating article view count failed", "article_id", article.ID, "error", err)
			return wrapErr("stat flush", err)
		}

		s.logger.Debug("flushed article view count",
			"article_id", article.ID,
			"title", article.Title,
			"from", article.ViewCount,
			"to", article.ViewCount+hits)

		flushed = append(flushed, entry)
		processed++
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("stat flush commit failed", "error", err)
		return wrapErr("stat flush", err)
	}

	for _, entry := range flushed {
		entry.ResetHits()
	}

	s.logger.Info("synchronized statistics",
		"blog_views", stat.BlogViewCount,
		"articles_flushed", processed)
	return nil
}

// sampleKeys picks a uniform without-replacement sample of at most size
// keys via a partial Fisher-Yates shuffle. The keys come from a map
// snapshot, so the sample contains no duplicates.
func sampleKeys(keys []string, size int) []string {
	if len(keys) <= size {
		return keys
	}

	sampled := make([]string, len(keys))
	copy(sampled, keys)

	for i := 0; i < size; i++ {
		j := i + rand.IntN(len(sampled)-i)
		sampled[i], sampled[j] = sampled[j], sampled[i]
	}
	return sampled[:size]
}
