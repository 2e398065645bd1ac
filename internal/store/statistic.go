// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/oncereply/b3log-solo/internal/model"
)

// GetStatistic returns the singleton blog-wide statistic record.
// Returns sql.ErrNoRows when the blog has never been initialized.
func (q *Queries) GetStatistic(ctx context.Context) (model.Statistic, error) {
	var s model.Statistic
	err := q.db.QueryRowContext(ctx,
		`SELECT id, blog_view_count, blog_article_count, published_article_count, blog_comment_count
		 FROM statistic WHERE id = ?`, model.StatisticID).
		Scan(&s.ID, &s.BlogViewCount, &s.BlogArticleCount, &s.PublishedArticleCount, &s.BlogCommentCount)
	return s, err
}

// UpsertStatistic overwrites the singleton statistic record, creating it on
// first write.
func (q *Queries) UpsertStatistic(ctx context.Context, s model.Statistic) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO statistic (id, blog_view_count, blog_article_count, published_article_count, blog_comment_count)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   blog_view_count = excluded.blog_view_count,
		   blog_article_count = excluded.blog_article_count,
		   published_article_count = excluded.published_article_count,
		   blog_comment_count = excluded.blog_comment_count`,
		model.StatisticID, s.BlogViewCount, s.BlogArticleCount,
		s.PublishedArticleCount, s.BlogCommentCount)
	return err
}

// InsertEventLogParams holds the fields for InsertEventLog.
type InsertEventLogParams struct {
	Level     string
	Message   string
	Source    string
	CreatedAt time.Time
}

// InsertEventLog appends a record to the audit event log.
func (q *Queries) InsertEventLog(ctx context.Context, arg InsertEventLogParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO event_log (level, message, source, created_at) VALUES (?, ?, ?, ?)`,
		arg.Level, arg.Message, arg.Source, arg.CreatedAt)
	return err
}
