// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

var (
	err0 = errors.New("0")
	err1 = errors.New("1")
	err2 = errors.New("2")
)

func TestWrap(t *testing.T) {
	cases := []struct {
		desc    string
		wrapper error
		wrapped error
		contain error
	}{
		{
			desc:    "wrap error with error",
			wrapper: err0,
			wrapped: err1,
			contain: err1,
		},
		{
			desc:    "wrap nil with error",
			wrapper: err0,
			wrapped: nil,
			contain: nil,
		},
		{
			desc:    "wrap error with nil",
			wrapper: nil,
			wrapped: err0,
			contain: nil,
		},
		{
			desc:    "wrap chain keeps innermost",
			wrapper: err2,
			wrapped: errors.Wrap(err1, err0),
			contain: err0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := errors.Wrap(tc.wrapper, tc.wrapped)
			if tc.wrapper == nil {
				assert.Nil(t, err)
				return
			}
			assert.True(t, errors.Contains(err, tc.wrapper), fmt.Sprintf("%s: expected to contain wrapper", tc.desc))
			if tc.contain != nil {
				assert.True(t, errors.Contains(err, tc.contain), fmt.Sprintf("%s: expected to contain wrapped", tc.desc))
			}
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, errors.Contains(nil, nil))
	assert.False(t, errors.Contains(err0, nil))
	assert.False(t, errors.Contains(nil, err0))
	assert.True(t, errors.Contains(errors.Wrap(err1, err0), err0))
	assert.False(t, errors.Contains(errors.Wrap(err1, err0), err2))
}

func TestSDKErrorStatus(t *testing.T) {
	sdkErr := errors.NewSDKErrorWithStatus(err0, 404)
	assert.Equal(t, 404, sdkErr.StatusCode())
	assert.Contains(t, sdkErr.Error(), "Not Found")
}
