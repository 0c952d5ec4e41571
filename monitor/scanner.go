// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

var certExtensions = map[string]bool{
	".pem": true,
	".crt": true,
	".cer": true,
}

// Scanner walks the configured locations and produces one immutable
// Snapshot per scan. It is safe to call Scan repeatedly and concurrently
// with snapshot readers.
type Scanner struct {
	locations    []Location
	warningDays  int
	criticalDays int
	version      atomic.Uint64
	logger       *slog.Logger
}

// NewScanner returns a Scanner over the configured inventory.
func NewScanner(cfg Config, logger *slog.Logger) *Scanner {
	return &Scanner{
		locations:    cfg.Locations,
		warningDays:  cfg.WarningDays,
		criticalDays: cfg.CriticalDays,
		logger:       logger,
	}
}

// Scan reads every configured location and classifies each discovered
// artifact. Unreadable or malformed artifacts are recorded as failures and
// never abort the scan.
func (s *Scanner) Scan(ctx context.Context) Snapshot {
	started := time.Now()
	snap := Snapshot{
		Version: s.version.Add(1),
		TakenAt: started.UTC(),
	}

	// Overlapping locations, a directory plus a file inside it or the same
	// path listed twice, resolve to one entry per cycle. Duplicate paths in
	// a snapshot would collide in the metrics exposition.
	seen := make(map[string]struct{})

	for _, loc := range s.locations {
		if ctx.Err() != nil {
			break
		}

		for _, path := range s.expand(loc, seen, &snap) {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}

			record, err := ReadRecord(path)
			if err != nil {
				snap.Failures = append(snap.Failures, parseFailure(path, err))
				s.logger.Warn("skipping artifact", slog.String("path", path), slog.String("error", err.Error()))
				continue
			}

			now := time.Now()
			snap.Entries = append(snap.Entries, Entry{
				Record:        record,
				Status:        Classify(record.NotAfter, now, s.warningDays, s.criticalDays),
				DaysRemaining: record.DaysRemaining(now),
				Location:      loc,
			})
		}
	}

	snap.Duration = time.Since(started)

	return snap
}

// expand resolves a location to the artifact files beneath it. A location
// that cannot be listed is itself recorded as an unreadable failure.
func (s *Scanner) expand(loc Location, seen map[string]struct{}, snap *Snapshot) []string {
	info, err := os.Stat(loc.Path)
	if err != nil {
		if _, ok := seen[loc.Path]; ok {
			return nil
		}
		seen[loc.Path] = struct{}{}
		snap.Failures = append(snap.Failures, ParseFailure{
			Path:   loc.Path,
			Kind:   KindUnreadable,
			Reason: err.Error(),
		})
		return nil
	}

	if !info.IsDir() {
		return []string{loc.Path}
	}

	dirents, err := os.ReadDir(loc.Path)
	if err != nil {
		if _, ok := seen[loc.Path]; ok {
			return nil
		}
		seen[loc.Path] = struct{}{}
		snap.Failures = append(snap.Failures, ParseFailure{
			Path:   loc.Path,
			Kind:   KindUnreadable,
			Reason: err.Error(),
		})
		return nil
	}

	var paths []string
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		if certExtensions[strings.ToLower(filepath.Ext(de.Name()))] {
			paths = append(paths, filepath.Join(loc.Path, de.Name()))
		}
	}

	return paths
}

func parseFailure(path string, err error) ParseFailure {
	kind := KindMalformed
	if errors.Contains(err, ErrUnreadable) {
		kind = KindUnreadable
	}
	return ParseFailure{
		Path:   path,
		Kind:   kind,
		Reason: err.Error(),
	}
}
