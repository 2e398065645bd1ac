// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/oncereply/b3log-solo/internal/model"
)

const articleColumns = `id, title, permalink, published, view_count, random_value, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (model.Article, error) {
	var a model.Article
	err := row.Scan(&a.ID, &a.Title, &a.Permalink, &a.Published,
		&a.ViewCount, &a.RandomValue, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetArticleByID returns the article with the given id.
// Returns sql.ErrNoRows when absent.
func (q *Queries) GetArticleByID(ctx context.Context, id string) (model.Article, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return scanArticle(row)
}

// ListPublishedArticlesParams holds pagination for ListPublishedArticles.
type ListPublishedArticlesParams struct {
	Limit  int64
	Offset int64
}

// ListPublishedArticles returns a page of published articles sorted by
// creation time, newest first.
func (q *Queries) ListPublishedArticles(ctx context.Context, arg ListPublishedArticlesParams) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE published = 1 ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CountPublishedArticles returns the number of published articles.
func (q *Queries) CountPublishedArticles(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE published = 1`).Scan(&n)
	return n, err
}

// UpdateArticleStatsParams holds the fields for UpdateArticleStats.
type UpdateArticleStatsParams struct {
	ViewCount   int64
	RandomValue float64
	ID          string
}

// UpdateArticleStats persists a flushed view count together with a fresh
// random tie-break value.
func (q *Queries) UpdateArticleStats(ctx context.Context, arg UpdateArticleStatsParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE articles SET view_count = ?, random_value = ? WHERE id = ?`,
		arg.ViewCount, arg.RandomValue, arg.ID)
	return err
}

// CreateArticleParams holds the fields for CreateArticle.
type CreateArticleParams struct {
	ID          string
	Title       string
	Permalink   string
	Published   bool
	ViewCount   int64
	RandomValue float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateArticle inserts an article record. The authoring flows own the full
// article lifecycle; this insert exists for seeding and tests.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO articles (id, title, permalink, published, view_count, random_value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Title, arg.Permalink, arg.Published, arg.ViewCount,
		arg.RandomValue, arg.CreatedAt, arg.UpdatedAt)
	return err
}
