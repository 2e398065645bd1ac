// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oncereply/b3log-solo/internal/auth"
	"github.com/oncereply/b3log-solo/internal/model"
	"github.com/oncereply/b3log-solo/internal/store"
)

// UserService provides transactional CRUD over user accounts with
// case-insensitive email uniqueness enforced inside the transaction
// boundary.
type UserService struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(db *sql.DB, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{db: db, logger: logger}
}

// NormalizeEmail trims and lower-cases an email for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AddUserParams holds the input for Add.
type AddUserParams struct {
	Name     string
	Email    string
	Password string // raw, hashed before storage
	Role     string // optional, defaults to model.RoleDefault
}

// Add creates a user and returns the generated id. Fails with
// ErrDuplicateEmail when any existing user owns the normalized email.
// Either the uniqueness check and all field writes commit together, or
// nothing does.
func (s *UserService) Add(ctx context.Context, arg AddUserParams) (string, error) {
	email := NormalizeEmail(arg.Email)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", wrapErr("add user", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := store.New(s.db).WithTx(tx)

	if _, err := q.GetUserByEmail(ctx, email); err == nil {
		return "", ErrDuplicateEmail
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error("adding user failed", "email", email, "error", err)
		return "", wrapErr("add user", err)
	}

	hash, err := auth.HashPassword(arg.Password)
	if err != nil {
		return "", wrapErr("add user", err)
	}

	role := arg.Role
	if role == "" {
		role = model.RoleDefault
	}

	id := uuid.NewString()
	now := time.Now()
	if err := q.CreateUser(ctx, store.CreateUserParams{
		ID:           id,
		Email:        email,
		Name:         arg.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		s.logger.Error("adding user failed", "email", email, "error", err)
		return "", wrapErr("add user", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("adding user failed", "email", email, "error", err)
		return "", wrapErr("add user", err)
	}

	return id, nil
}

// UpdateUserParams holds the input for Update.
type UpdateUserParams struct {
	ID       string
	Email    string
	Name     string
	Password string // raw, re-hashed before storage
}

// Update overwrites email, name, and password of an existing user,
// preserving the role. Fails with ErrNotFound when the id does not resolve
// and with ErrDuplicateEmail when a different user owns the new email.
func (s *UserService) Update(ctx context.Context, arg UpdateUserParams) error {
	email := NormalizeEmail(arg.Email)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("update user", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := store.New(s.db).WithTx(tx)

	if _, err := q.GetUserByID(ctx, arg.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Error("updating user failed", "id", arg.ID, "error", err)
		return wrapErr("update user", err)
	}

	if other, err := q.GetUserByEmail(ctx, email); err == nil {
		if other.ID != arg.ID {
			return ErrDuplicateEmail
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error("updating user failed", "id", arg.ID, "error", err)
		return wrapErr("update user", err)
	}

	hash, err := auth.HashPassword(arg.Password)
	if err != nil {
		return wrapErr("update user", err)
	}

	if err := q.UpdateUser(ctx, store.UpdateUserParams{
		Email:        email,
		Name:         arg.Name,
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
		ID:           arg.ID,
	}); err != nil {
		s.logger.Error("updating user failed", "id", arg.ID, "error", err)
		return wrapErr("update user", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("updating user failed", "id", arg.ID, "error", err)
		return wrapErr("update user", err)
	}
	return nil
}

// Remove deletes the user with the given id inside a transaction. Deleting
// a nonexistent id is a no-op success.
func (s *UserService) Remove(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("remove user", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := store.New(s.db).WithTx(tx)

	if err := q.DeleteUser(ctx, id); err != nil {
		s.logger.Error("removing user failed", "id", id, "error", err)
		return wrapErr("remove user", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("removing user failed", "id", id, "error", err)
		return wrapErr("remove user", err)
	}
	return nil
}

// Get returns the user with the given id, or ErrNotFound.
func (s *UserService) Get(ctx context.Context, id string) (model.User, error) {
	u, err := store.New(s.db).GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, wrapErr("get user", err)
	}
	return u, nil
}

// GetByEmail returns the user owning the normalized email, or ErrNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := store.New(s.db).GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, wrapErr("get user", err)
	}
	return u, nil
}

// UserPage is one page of users plus pagination metadata for the console.
type UserPage struct {
	Users     []model.User
	PageCount int64
	PageNums  []int64
}

// List returns the given 1-based page of users. windowSize bounds the
// number of page numbers returned for the console pager.
func (s *UserService) List(ctx context.Context, page, pageSize, windowSize int64) (UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	q := store.New(s.db)

	total, err := q.CountUsers(ctx)
	if err != nil {
		return UserPage{}, wrapErr("list users", err)
	}

	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	users, err := q.ListUsers(ctx, store.ListUsersParams{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return UserPage{}, wrapErr("list users", err)
	}

	return UserPage{
		Users:     users,
		PageCount: pageCount,
		PageNums:  pageNums(page, pageCount, windowSize),
	}, nil
}

// pageNums returns a window of page numbers centered on current.
func pageNums(current, pageCount, windowSize int64) []int64 {
	if windowSize < 1 {
		windowSize = 10
	}

	start := current - windowSize/2
	if start < 1 {
		start = 1
	}
	end := start + windowSize - 1
	if end > pageCount {
		end = pageCount
		if start = end - windowSize + 1; start < 1 {
			start = 1
		}
	}

	nums := make([]int64, 0, end-start+1)
	for n := start; n <= end; n++ {
		nums = append(nums, n)
	}
	return nums
}
