// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oncereply/b3log-solo/internal/i18n"
	"github.com/oncereply/b3log-solo/internal/model"
	"github.com/oncereply/b3log-solo/internal/service"
)

// UserConsoleHandler handles the administrative user management routes.
type UserConsoleHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserConsoleHandler creates a UserConsoleHandler.
func NewUserConsoleHandler(users *service.UserService, logger *slog.Logger) *UserConsoleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserConsoleHandler{users: users, logger: logger}
}

// userRequest is the add/update request body.
type userRequest struct {
	OID      string `json:"oId"`
	Name     string `json:"userName"`
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
	Role     string `json:"userRole"`
}

// Add handles POST /console/user.
// Responds with {statusCode, oId, msg}.
func (h *UserConsoleHandler) Add(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatusCode(w, http.StatusBadRequest, false, i18n.T(lang, "user.get_fail"))
		return
	}

	id, err := h.users.Add(r.Context(), service.AddUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.logger.Error("adding user failed", "email", req.Email, "error", err)
		writeStatus(w, false, h.failMsg(lang, err, "user.update_fail"))
		return
	}

	writeJSON(w, map[string]any{
		"statusCode": true,
		"oId":        id,
		"msg":        i18n.T(lang, "user.add_success"),
	})
}

// Update handles PUT /console/user.
// Responds with {statusCode, msg}.
func (h *UserConsoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatusCode(w, http.StatusBadRequest, false, i18n.T(lang, "user.update_fail"))
		return
	}

	err := h.users.Update(r.Context(), service.UpdateUserParams{
		ID:       req.OID,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("updating user failed", "id", req.OID, "error", err)
		writeStatus(w, false, h.failMsg(lang, err, "user.update_fail"))
		return
	}

	writeStatus(w, true, i18n.T(lang, "user.update_success"))
}

// Remove handles DELETE /console/user/{id}.
// Responds with {statusCode, msg}.
func (h *UserConsoleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	id := chi.URLParam(r, "id")

	if err := h.users.Remove(r.Context(), id); err != nil {
		h.logger.Error("removing user failed", "id", id, "error", err)
		writeStatus(w, false, i18n.T(lang, "user.remove_fail"))
		return
	}

	writeStatus(w, true, i18n.T(lang, "user.remove_success"))
}

// Get handles GET /console/user/{id}.
// Responds with {statusCode, user}.
func (h *UserConsoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	id := chi.URLParam(r, "id")

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.logger.Error("getting user failed", "id", id, "error", err)
		}
		writeStatus(w, false, i18n.T(lang, "user.get_fail"))
		return
	}

	writeJSON(w, map[string]any{
		"statusCode": true,
		"user":       user,
	})
}

// List handles GET /console/users/{page}/{size}/{window}.
// Responds with {statusCode, pagination, users}.
func (h *UserConsoleHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	page := pathInt(r, "page", 1)
	size := pathInt(r, "size", 10)
	window := pathInt(r, "window", 10)

	result, err := h.users.List(r.Context(), page, size, window)
	if err != nil {
		h.logger.Error("listing users failed", "error", err)
		writeStatus(w, false, i18n.T(lang, "user.get_fail"))
		return
	}

	users := result.Users
	if users == nil {
		users = []model.User{}
	}

	writeJSON(w, map[string]any{
		"statusCode": true,
		"pagination": map[string]any{
			"paginationPageCount": result.PageCount,
			"paginationPageNums":  result.PageNums,
		},
		"users": users,
	})
}

// failMsg maps service errors to localized console messages.
func (h *UserConsoleHandler) failMsg(lang string, err error, fallbackKey string) string {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return i18n.T(lang, "user.duplicated_email")
	case errors.Is(err, service.ErrNotFound):
		return i18n.T(lang, "user.update_fail")
	default:
		return i18n.T(lang, fallbackKey)
	}
}

// pathInt parses a positive integer path parameter with a fallback.
func pathInt(r *http.Request, name string, fallback int64) int64 {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
