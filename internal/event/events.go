// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package event

import (
	"net/http"
	"time"

	"github.com/oncereply/b3log-solo/internal/model"
)

// ArticleUpdatedData is the payload of TypeArticleUpdated.
type ArticleUpdatedData struct {
	Article model.Article
}

// CommentAddedData is the payload of TypeCommentAdded.
type CommentAddedData struct {
	Comment model.Comment
}

// httpClient is the shared client for outbound notification requests.
// Responses are never awaited beyond the status line; these calls are
// one-shot and best-effort.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}
