// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the business-logic services: user management
// and view-count statistics synchronization.
package service

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the management services.
var (
	// ErrDuplicateEmail indicates another live user already owns the
	// normalized email.
	ErrDuplicateEmail = errors.New("duplicated email")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// ServiceError wraps a repository failure that aborted a service operation.
// The transaction has been rolled back when a ServiceError is returned.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapErr wraps a repository error into a ServiceError unless it is one of
// the service sentinels, which pass through unchanged.
func wrapErr(op string, err error) error {
	if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &ServiceError{Op: op, Err: err}
}
