// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Article is the view of an article the core services work with. Content
// authoring owns the full record; the statistics synchronizer and the
// sitemap builder only touch the fields below.
type Article struct {
	ID        string    `json:"oId"`
	Title     string    `json:"articleTitle"`
	Permalink string    `json:"articlePermalink"`
	Published bool      `json:"articleIsPublished"`
	ViewCount int64     `json:"articleViewCount"`
	// RandomValue is a per-record tie-break value refreshed on every
	// view-count flush, used for random-article selection and cache busting.
	RandomValue float64   `json:"articleRandomDouble"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Page represents a navigation page. A page permalink may be an absolute
// URL when the operator configured an external link as a page.
type Page struct {
	ID        string    `json:"oId"`
	Title     string    `json:"pageTitle"`
	Permalink string    `json:"pagePermalink"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Tag represents an article tag.
type Tag struct {
	ID    string `json:"oId"`
	Title string `json:"tagTitle"`
}

// ArchiveDate represents a distinct year-month archive bucket.
type ArchiveDate struct {
	ID   string    `json:"oId"`
	Time time.Time `json:"archiveTime"`
}

// Comment represents a reader comment, as carried by the comment-added
// event payload.
type Comment struct {
	ID          string `json:"oId"`
	AuthorName  string `json:"commentName"`
	AuthorEmail string `json:"commentEmail"`
	Content     string `json:"commentContent"`
	ArticleID   string `json:"commentOnId"`
}
