// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package errors

// ErrEmptyPath indicates empty file path.
var ErrEmptyPath = New("empty file path")
