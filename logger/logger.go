// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package logger provides a structured logger based on log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to w at the given level.
// Accepted levels are debug, info, warn and error.
func New(w io.Writer, levelText string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return nil, err
	}

	logHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(logHandler), nil
}

// ExitWithError terminates the process with the given exit code.
// Deferred in main so cleanup deferred after it still runs.
func ExitWithError(exitCode *int) {
	os.Exit(*exitCode)
}
