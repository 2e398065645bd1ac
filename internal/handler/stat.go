// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/oncereply/b3log-solo/internal/pagecache"
	"github.com/oncereply/b3log-solo/internal/service"
)

// StatHandler exposes the statistics maintenance endpoints.
type StatHandler struct {
	sync   *service.StatSync
	pages  *pagecache.Manager
	logger *slog.Logger
}

// NewStatHandler creates a StatHandler.
func NewStatHandler(sync *service.StatSync, pages *pagecache.Manager, logger *slog.Logger) *StatHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatHandler{sync: sync, pages: pages, logger: logger}
}

// ViewCounter handles GET /console/stat/viewcnt: flushes cached view
// counters to the database. The response carries no body; flush failures
// are logged and retried on the next schedule.
func (h *StatHandler) ViewCounter(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("syncing statistics from cache to repository")

	if err := h.sync.Flush(r.Context()); err != nil {
		h.logger.Error("statistics flush failed", "error", err)
	}

	w.WriteHeader(http.StatusOK)
}

// ExpireEntries handles GET /console/stat/expire: evicts stale page-cache
// entries.
func (h *StatHandler) ExpireEntries(w http.ResponseWriter, r *http.Request) {
	removed := h.pages.RemoveExpired()
	if removed > 0 {
		h.logger.Info("evicted expired page cache entries", "count", removed)
	}

	w.WriteHeader(http.StatusOK)
}
