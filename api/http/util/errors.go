// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package util

import "github.com/sy-cmd/vault-pki-toolkit/pkg/errors"

// Errors defined in this file are used by the LoggingErrorEncoder decorator
// to distinguish and log API request validation errors and avoid that service
// errors are logged twice.
var (
	// ErrValidation indicates that an error was returned by the API.
	ErrValidation = errors.NewRequestError("something went wrong with the request")

	// ErrMissingID indicates missing entity ID.
	ErrMissingID = errors.NewRequestError("missing entity id")

	// ErrLimitSize indicates that an invalid limit.
	ErrLimitSize = errors.NewRequestError("invalid limit size")

	// ErrOffsetSize indicates an invalid offset.
	ErrOffsetSize = errors.NewRequestError("invalid offset size")

	// ErrInvalidQueryParams indicates invalid query parameters.
	ErrInvalidQueryParams = errors.NewRequestError("invalid query parameters")
)
