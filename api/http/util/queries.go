// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package util provides API request validation and query parsing helpers.
package util

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

// ReadStringQuery reads the value of string http query parameters for a
// given key.
func ReadStringQuery(r *http.Request, key string, def string) (string, error) {
	vals := r.URL.Query()[key]
	if len(vals) > 1 {
		return "", errors.Wrap(ErrInvalidQueryParams, errors.New("duplicate query parameter"))
	}

	if len(vals) == 0 {
		return def, nil
	}

	return vals[0], nil
}

// ReadNumQuery returns a numeric value of the http query parameter for a
// given key.
func ReadNumQuery[N uint64 | int64 | uint16 | float64](r *http.Request, key string, def N) (N, error) {
	vals := r.URL.Query()[key]
	if len(vals) > 1 {
		return 0, errors.Wrap(ErrInvalidQueryParams, errors.New("duplicate query parameter"))
	}
	if len(vals) == 0 {
		return def, nil
	}

	switch any(def).(type) {
	case uint64:
		v, err := strconv.ParseUint(vals[0], 10, 64)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidQueryParams, err)
		}
		return N(v), nil
	case int64:
		v, err := strconv.ParseInt(vals[0], 10, 64)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidQueryParams, err)
		}
		return N(v), nil
	case uint16:
		v, err := strconv.ParseUint(vals[0], 10, 16)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidQueryParams, err)
		}
		return N(v), nil
	case float64:
		v, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidQueryParams, err)
		}
		return N(v), nil
	default:
		return def, nil
	}
}

// LoggingErrorEncoder is a go-kit error encoder logging decorator.
func LoggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if errors.Contains(err, ErrValidation) {
			logger.Error(err.Error())
		}
		enc(ctx, err, w)
	}
}
