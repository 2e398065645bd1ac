// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic statistics flush.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/oncereply/b3log-solo/internal/pagecache"
	"github.com/oncereply/b3log-solo/internal/service"
)

// Scheduler triggers the view-count flush on a cron cadence.
type Scheduler struct {
	cron   *cron.Cron
	sync   *service.StatSync
	pages  *pagecache.Manager
	logger *slog.Logger
}

// New creates a scheduler instance.
func New(sync *service.StatSync, pages *pagecache.Manager, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		sync:   sync,
		pages:  pages,
		logger: logger,
	}
}

// Start registers the flush job with the given cron spec and starts the
// scheduler.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()

		if err := s.sync.Flush(ctx); err != nil {
			s.logger.Error("scheduled statistics flush failed", "error", err)
		}

		if removed := s.pages.RemoveExpired(); removed > 0 {
			s.logger.Debug("evicted expired page cache entries", "count", removed)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "spec", spec, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to
// finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
