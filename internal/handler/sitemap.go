// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/oncereply/b3log-solo/internal/sitemap"
)

// SitemapHandler serves /sitemap.xml.
type SitemapHandler struct {
	builder *sitemap.Builder
	logger  *slog.Logger
}

// NewSitemapHandler creates a SitemapHandler.
func NewSitemapHandler(builder *sitemap.Builder, logger *slog.Logger) *SitemapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SitemapHandler{builder: builder, logger: logger}
}

// Get handles GET /sitemap.xml. On any aggregation failure the response is
// 503 rather than a partial document.
func (h *SitemapHandler) Get(w http.ResponseWriter, r *http.Request) {
	sm, err := h.builder.Build(r.Context())
	if err != nil {
		h.logger.Error("generating sitemap failed", "error", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	body, err := sm.XML()
	if err != nil {
		h.logger.Error("rendering sitemap failed", "error", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = w.Write(body)
}
