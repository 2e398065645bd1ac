// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/oncereply/b3log-solo/internal/model"
)

const userColumns = `id, email, name, password_hash, role, article_count, published_article_count, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.ArticleCount, &u.PublishedArticleCount, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUserByID returns the user with the given id.
// Returns sql.ErrNoRows when absent.
func (q *Queries) GetUserByID(ctx context.Context, id string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail returns the user owning the given (normalized) email.
// Returns sql.ErrNoRows when absent.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new user with zero article counters.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, article_count, published_article_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		arg.ID, arg.Email, arg.Name, arg.PasswordHash, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	return err
}

// UpdateUserParams holds the fields for UpdateUser.
type UpdateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	UpdatedAt    time.Time
	ID           string
}

// UpdateUser overwrites email, name, and password hash of an existing user.
// The role and article counters are left unchanged.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET email = ?, name = ?, password_hash = ?, updated_at = ? WHERE id = ?`,
		arg.Email, arg.Name, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteUser removes the user with the given id.
func (q *Queries) DeleteUser(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// ListUsersParams holds pagination for ListUsers.
type ListUsersParams struct {
	Limit  int64
	Offset int64
}

// ListUsers returns a page of users ordered by creation time.
func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
