// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/oncereply/b3log-solo/internal/auth"
	"github.com/oncereply/b3log-solo/internal/i18n"
	"github.com/oncereply/b3log-solo/internal/middleware"
	"github.com/oncereply/b3log-solo/internal/service"
)

// AdminIndexURI is the destination after a successful login.
const AdminIndexURI = "/admin-index.do"

// AuthHandler handles login and logout.
type AuthHandler struct {
	users          *service.UserService
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users *service.UserService, sm *scs.SessionManager, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{users: users, sessionManager: sm, logger: logger}
}

// loginRequest is the POST /login body.
type loginRequest struct {
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
	Remember bool   `json:"rememberLogin"`
}

// Login handles POST /login.
// Responds with {isLoggedIn, msg?, to?}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	failMsg := i18n.T(lang, "login.fail")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, map[string]any{"isLoggedIn": false, "msg": failMsg})
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeJSON(w, map[string]any{"isLoggedIn": false, "msg": failMsg})
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.logger.Error("login lookup failed", "email", req.Email, "error", err)
		} else {
			h.logger.Warn("login for unknown email", "email", req.Email)
		}
		writeJSON(w, map[string]any{"isLoggedIn": false, "msg": failMsg})
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.logger.Warn("login with wrong password", "email", req.Email)
		writeJSON(w, map[string]any{"isLoggedIn": false, "msg": failMsg})
		return
	}

	// Renew the token on privilege change to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		h.logger.Error("renewing session failed", "error", err)
		writeJSON(w, map[string]any{"isLoggedIn": false, "msg": failMsg})
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	h.sessionManager.RememberMe(r.Context(), req.Remember)

	h.logger.Info("logged in", "email", user.Email)
	writeJSON(w, map[string]any{"isLoggedIn": true, "to": AdminIndexURI})
}

// Logout handles GET /logout: destroys the session and redirects to the
// goto parameter, constrained to local paths.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.sessionManager.Destroy(r.Context())

	dest := r.URL.Query().Get("goto")
	if dest == "" || !strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "//") {
		dest = "/"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
