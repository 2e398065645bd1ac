// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/oncereply/b3log-solo/internal/cache"
	"github.com/oncereply/b3log-solo/internal/config"
	"github.com/oncereply/b3log-solo/internal/event"
	"github.com/oncereply/b3log-solo/internal/handler"
	"github.com/oncereply/b3log-solo/internal/i18n"
	"github.com/oncereply/b3log-solo/internal/logging"
	"github.com/oncereply/b3log-solo/internal/middleware"
	"github.com/oncereply/b3log-solo/internal/pagecache"
	"github.com/oncereply/b3log-solo/internal/scheduler"
	"github.com/oncereply/b3log-solo/internal/service"
	"github.com/oncereply/b3log-solo/internal/session"
	"github.com/oncereply/b3log-solo/internal/sitemap"
	"github.com/oncereply/b3log-solo/internal/store"
	"github.com/oncereply/b3log-solo/internal/version"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return err
	}

	var base slog.Handler
	if cfg.IsDevelopment() {
		base = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	} else {
		base = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	}
	logger := slog.New(logging.NewEventLogHandler(base, db))
	slog.SetDefault(logger)

	logger.Info("starting solo",
		"version", version.Version,
		"host", cfg.BlogHost,
		"env", cfg.Env)

	if err := i18n.Init(logger); err != nil {
		return err
	}

	queryCache, err := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	})
	if err != nil {
		return err
	}
	defer func() { _ = queryCache.Close() }()

	queries := store.New(db)
	cached := store.NewCached(queries, queryCache, time.Duration(cfg.CacheTTL)*time.Second)

	pages := pagecache.NewManager(24 * time.Hour)
	if stat, err := queries.GetStatistic(context.Background()); err == nil {
		pages.SetStatistic(stat)
	}

	userService := service.NewUserService(db, logger)
	articleLabel := i18n.T("en", "pagetype.article")
	statSync := service.NewStatSync(db, cached, pages, articleLabel, logger)
	sitemapBuilder := sitemap.NewBuilder(cached, cfg.BlogHost, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := event.NewBus(logger, 3)
	bus.Subscribe(event.NewPinger(cfg, logger))
	bus.Subscribe(event.NewCommentSender(cfg, logger))
	bus.Start(ctx)
	defer bus.Stop()

	sched := scheduler.New(statSync, pages, logger)
	if err := sched.Start(cfg.StatFlushSpec); err != nil {
		return err
	}
	defer sched.Stop()

	sm := session.New(db, cfg.IsDevelopment())

	authHandler := handler.NewAuthHandler(userService, sm, logger)
	userConsole := handler.NewUserConsoleHandler(userService, logger)
	statHandler := handler.NewStatHandler(statSync, pages, logger)
	sitemapHandler := handler.NewSitemapHandler(sitemapBuilder, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(sm.LoadAndSave)
	r.Use(middleware.LoadUser(sm, db))

	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)
	r.Get("/sitemap.xml", sitemapHandler.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin())

		r.Post("/console/user", userConsole.Add)
		r.Put("/console/user", userConsole.Update)
		r.Delete("/console/user/{id}", userConsole.Remove)
		r.Get("/console/user/{id}", userConsole.Get)
		r.Get("/console/users/{page}/{size}/{window}", userConsole.List)

		r.Get("/console/stat/viewcnt", statHandler.ViewCounter)
		r.Get("/console/stat/expire", statHandler.ExpireEntries)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ServerAddr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
