// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package event

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/oncereply/b3log-solo/internal/config"
)

// DefaultPingEndpoint is the blog-search ping API.
const DefaultPingEndpoint = "http://blogsearch.google.com/ping"

// Pinger notifies the blog-search service when an article is updated.
// Local installations never ping.
type Pinger struct {
	cfg      *config.Config
	endpoint string
	logger   *slog.Logger
}

// NewPinger creates the article-update ping listener.
func NewPinger(cfg *config.Config, logger *slog.Logger) *Pinger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pinger{cfg: cfg, endpoint: DefaultPingEndpoint, logger: logger}
}

// Type implements Listener.
func (p *Pinger) Type() Type {
	return TypeArticleUpdated
}

// Handle builds and dispatches the ping request. The response is read for
// its status only; failures are logged and dropped.
func (p *Pinger) Handle(ctx context.Context, e Event) error {
	data, ok := e.Data.(ArticleUpdatedData)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", e.Data)
	}

	if p.cfg.IsLocalHost() {
		p.logger.Info("blog runs on a local host, skipping search ping",
			"title", data.Article.Title)
		return nil
	}

	pingURL := p.PingURL(data.Article.Permalink)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pingURL, nil)
	if err != nil {
		return fmt.Errorf("building ping request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinging search service: %w", err)
	}
	_ = resp.Body.Close()

	p.logger.Debug("pinged search service",
		"title", data.Article.Title, "status", resp.StatusCode)
	return nil
}

// PingURL builds the percent-encoded ping URL for an article permalink.
func (p *Pinger) PingURL(permalink string) string {
	blogURL := "http://" + p.cfg.BlogHost

	q := url.Values{}
	q.Set("name", p.cfg.BlogTitle)
	q.Set("url", blogURL)
	q.Set("changesURL", blogURL+permalink)

	return p.endpoint + "?" + q.Encode()
}
