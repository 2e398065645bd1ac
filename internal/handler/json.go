// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the thin HTTP request processors translating
// verbs and paths into service calls and JSON responses.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/oncereply/b3log-solo/internal/i18n"
)

// writeJSON writes a JSON response body.
func writeJSON(w http.ResponseWriter, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// writeStatus writes the standard console envelope {statusCode, msg}.
func writeStatus(w http.ResponseWriter, ok bool, msg string) {
	body := map[string]any{"statusCode": ok}
	if msg != "" {
		body["msg"] = msg
	}
	writeJSON(w, body)
}

// writeStatusCode is writeStatus with a non-200 HTTP status. The header
// must be set before WriteHeader or the content type is lost.
func writeStatusCode(w http.ResponseWriter, status int, ok bool, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeStatus(w, ok, msg)
}

// requestLang resolves the response language from the Accept-Language
// header.
func requestLang(r *http.Request) string {
	return i18n.Match(r.Header.Get("Accept-Language"))
}
