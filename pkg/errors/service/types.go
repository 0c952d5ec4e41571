// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package service contains wrappers for service-level errors.
package service

import "github.com/sy-cmd/vault-pki-toolkit/pkg/errors"

var (
	// ErrViewEntity indicates error in viewing entity or entities.
	ErrViewEntity = errors.NewServiceError("view entity failed")

	// ErrNotFound indicates a non-existent entity request.
	ErrNotFound = errors.NewNotFoundError("entity not found")
)
