// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/oncereply/b3log-solo/internal/config"
	"github.com/oncereply/b3log-solo/internal/version"
)

// DefaultSymphonyEndpoint receives mirrored comments.
const DefaultSymphonyEndpoint = "https://symphony.b3log.org/solo/comment"

// CommentPayload is the wire format of a mirrored comment.
type CommentPayload struct {
	ID          string `json:"commentId"`
	AuthorName  string `json:"commentAuthorName"`
	AuthorEmail string `json:"commentAuthorEmail"`
	Content     string `json:"content"`
	ArticleID   string `json:"articleId"`
}

// SymphonyRequest is the full comment-mirror request body.
type SymphonyRequest struct {
	Comment          CommentPayload `json:"comment"`
	ClientVersion    string         `json:"clientVersion"`
	ClientRuntimeEnv string         `json:"clientRuntimeEnv"`
	ClientName       string         `json:"clientName"`
	ClientHost       string         `json:"clientHost"`
	ClientAdminEmail string         `json:"clientAdminEmail"`
	UserB3Key        string         `json:"userB3Key"`
}

// CommentSender mirrors newly added comments to the Symphony service.
// Local installations never send.
type CommentSender struct {
	cfg      *config.Config
	endpoint string
	logger   *slog.Logger
}

// NewCommentSender creates the comment-added mirror listener.
func NewCommentSender(cfg *config.Config, logger *slog.Logger) *CommentSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentSender{cfg: cfg, endpoint: DefaultSymphonyEndpoint, logger: logger}
}

// Type implements Listener.
func (s *CommentSender) Type() Type {
	return TypeCommentAdded
}

// Handle serializes the comment plus installation metadata and dispatches
// the upsert. The local comment write has already committed by the time
// this runs; nothing here can affect it.
func (s *CommentSender) Handle(ctx context.Context, e Event) error {
	data, ok := e.Data.(CommentAddedData)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", e.Data)
	}

	if s.cfg.IsLocalHost() {
		s.logger.Info("blog runs on a local host, skipping comment mirror",
			"comment_id", data.Comment.ID)
		return nil
	}

	body, err := json.Marshal(s.Payload(data))
	if err != nil {
		return fmt.Errorf("serializing comment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building comment mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending comment to symphony: %w", err)
	}
	_ = resp.Body.Close()

	s.logger.Debug("mirrored comment",
		"comment_id", data.Comment.ID, "status", resp.StatusCode)
	return nil
}

// Payload builds the request body for a comment-added event.
func (s *CommentSender) Payload(data CommentAddedData) SymphonyRequest {
	return SymphonyRequest{
		Comment: CommentPayload{
			ID:          data.Comment.ID,
			AuthorName:  data.Comment.AuthorName,
			AuthorEmail: data.Comment.AuthorEmail,
			Content:     data.Comment.Content,
			ArticleID:   data.Comment.ArticleID,
		},
		ClientVersion:    version.Version,
		ClientRuntimeEnv: version.RuntimeEnv(),
		ClientName:       version.ClientName,
		ClientHost:       s.cfg.BlogHost,
		ClientAdminEmail: s.cfg.AdminEmail,
		UserB3Key:        s.cfg.B3Key,
	}
}
