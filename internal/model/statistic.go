// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// StatisticID is the id of the singleton blog-wide statistic record.
const StatisticID = "statistic"

// Statistic is the blog-wide aggregate record. It is cached in memory on
// the hot path and periodically flushed to durable storage.
type Statistic struct {
	ID                    string `json:"oId"`
	BlogViewCount         int64  `json:"statisticBlogViewCount"`
	BlogArticleCount      int64  `json:"statisticBlogArticleCount"`
	PublishedArticleCount int64  `json:"statisticPublishedBlogArticleCount"`
	BlogCommentCount      int64  `json:"statisticBlogCommentCount"`
}
