// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sitemap

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/oncereply/b3log-solo/internal/store"
)

// articlePageSize is the page size for the bulk article enumeration.
const articlePageSize = 100

// Builder aggregates blog content into a sitemap document.
type Builder struct {
	cached *store.CachedQueries
	host   string // blog host without scheme
	logger *slog.Logger
}

// NewBuilder creates a sitemap builder for the given blog host.
func NewBuilder(cached *store.CachedQueries, host string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cached: cached, host: host, logger: logger}
}

// Build produces the complete sitemap. It never returns a partial
// document: any aggregation failure surfaces as an error for the handler
// to turn into a service-unavailable response.
func (b *Builder) Build(ctx context.Context) (*Sitemap, error) {
	sm := New()

	if err := b.addArticles(ctx, sm); err != nil {
		return nil, fmt.Errorf("adding articles: %w", err)
	}
	if err := b.addPages(ctx, sm); err != nil {
		return nil, fmt.Errorf("adding pages: %w", err)
	}
	if err := b.addTags(ctx, sm); err != nil {
		return nil, fmt.Errorf("adding tags: %w", err)
	}
	if err := b.addArchives(ctx, sm); err != nil {
		return nil, fmt.Errorf("adding archives: %w", err)
	}

	b.logger.Info("generated sitemap", "urls", len(sm.URLs))
	return sm, nil
}

// addArticles enumerates every published article, newest first. The result
// set can be large, so query-result caching is switched off for the whole
// enumeration; the deferred restore reverts the toggle on every exit path.
func (b *Builder) addArticles(ctx context.Context, sm *Sitemap) error {
	restore := b.cached.DisableCache()
	defer restore()

	for offset := int64(0); ; offset += articlePageSize {
		articles, err := b.cached.ListPublishedArticles(ctx, store.ListPublishedArticlesParams{
			Limit:  articlePageSize,
			Offset: offset,
		})
		if err != nil {
			return err
		}

		for _, a := range articles {
			sm.AddWithLastMod("http://"+b.host+a.Permalink, a.UpdatedAt)
		}

		if len(articles) < articlePageSize {
			return nil
		}
	}
}

// addPages adds one entry per navigation page. A page permalink may be an
// absolute URL when the operator configured an external link as a page;
// those are used verbatim.
func (b *Builder) addPages(ctx context.Context, sm *Sitemap) error {
	pages, err := b.cached.ListPages(ctx)
	if err != nil {
		return err
	}

	for _, p := range pages {
		if strings.Contains(p.Permalink, "://") {
			sm.Add(p.Permalink)
		} else {
			sm.Add("http://" + b.host + p.Permalink)
		}
	}
	return nil
}

// addTags adds one entry per tag plus the tags wall, which is present even
// when the blog has no tags at all.
func (b *Builder) addTags(ctx context.Context, sm *Sitemap) error {
	tags, err := b.cached.ListTags(ctx)
	if err != nil {
		return err
	}

	for _, t := range tags {
		sm.Add("http://" + b.host + "/tags/" + url.QueryEscape(t.Title))
	}

	// Tags wall
	sm.Add("http://" + b.host + "/tags.html")
	return nil
}

// addArchives adds one entry per distinct year-month archive bucket.
func (b *Builder) addArchives(ctx context.Context, sm *Sitemap) error {
	archives, err := b.cached.ListArchiveDates(ctx)
	if err != nil {
		return err
	}

	for _, a := range archives {
		sm.Add("http://" + b.host + "/archives/" + a.Time.Format("2006/01"))
	}
	return nil
}
