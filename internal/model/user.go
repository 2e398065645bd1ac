// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including User, Article, Statistic, and sitemap structures.
package model

import "time"

// User roles
const (
	RoleAdmin   = "admin"
	RoleDefault = "default"
)

// User represents a blog user account.
type User struct {
	ID                    string    `json:"oId"`
	Email                 string    `json:"userEmail"`
	Name                  string    `json:"userName"`
	PasswordHash          string    `json:"-"` // Never expose in JSON
	Role                  string    `json:"userRole"`
	ArticleCount          int64     `json:"userArticleCount"`
	PublishedArticleCount int64     `json:"userPublishedArticleCount"`
	CreatedAt             time.Time `json:"-"`
	UpdatedAt             time.Time `json:"-"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
