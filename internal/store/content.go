// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/oncereply/b3log-solo/internal/model"
)

// ListPages returns all navigation pages ordered by creation time.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, permalink, created_at, updated_at FROM pages ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []model.Page
	for rows.Next() {
		var p model.Page
		if err := rows.Scan(&p.ID, &p.Title, &p.Permalink, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// CreatePageParams holds the fields for CreatePage.
type CreatePageParams struct {
	ID        string
	Title     string
	Permalink string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePage inserts a navigation page.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO pages (id, title, permalink, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		arg.ID, arg.Title, arg.Permalink, arg.CreatedAt, arg.UpdatedAt)
	return err
}

// ListTags returns all tags ordered by title.
func (q *Queries) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, title FROM tags ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTag inserts a tag.
func (q *Queries) CreateTag(ctx context.Context, id, title string) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO tags (id, title) VALUES (?, ?)`, id, title)
	return err
}

// ListArchiveDates returns all archive buckets, newest first.
func (q *Queries) ListArchiveDates(ctx context.Context) ([]model.ArchiveDate, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, archive_time FROM archive_dates ORDER BY archive_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archives []model.ArchiveDate
	for rows.Next() {
		var a model.ArchiveDate
		if err := rows.Scan(&a.ID, &a.Time); err != nil {
			return nil, err
		}
		archives = append(archives, a)
	}
	return archives, rows.Err()
}

// CreateArchiveDate inserts an archive bucket.
func (q *Queries) CreateArchiveDate(ctx context.Context, id string, t time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO archive_dates (id, archive_time) VALUES (?, ?)`, id, t)
	return err
}
