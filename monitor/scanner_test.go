// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()

	writeCert(t, dir, "healthy.pem", certWithCN(t, "healthy.example.com", time.Now().Add(90*24*time.Hour)))
	writeCert(t, dir, "critical.crt", certWithCN(t, "critical.example.com", time.Now().Add(2*24*time.Hour)))
	writeCert(t, dir, "expired.cer", certWithCN(t, "expired.example.com", time.Now().Add(-24*time.Hour)))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a cert"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "broken.pem"), []byte("garbage"), 0o644))

	cfg := monitor.Config{
		Locations:    []monitor.Location{{Path: dir, Role: "web"}},
		WarningDays:  30,
		CriticalDays: 7,
	}

	scanner := monitor.NewScanner(cfg, testLogger())
	snap := scanner.Scan(context.Background())

	assert.Equal(t, 3, len(snap.Entries), "txt files must be ignored, broken PEM must not abort the scan")
	require.Equal(t, 1, len(snap.Failures))
	assert.Equal(t, monitor.KindMalformed, snap.Failures[0].Kind)
	assert.Equal(t, filepath.Join(dir, "broken.pem"), snap.Failures[0].Path)

	statuses := map[string]monitor.Status{}
	for _, e := range snap.Entries {
		statuses[e.Record.CommonName] = e.Status
		assert.Equal(t, "web", e.Location.Role)
	}
	assert.Equal(t, monitor.Healthy, statuses["healthy.example.com"])
	assert.Equal(t, monitor.Critical, statuses["critical.example.com"])
	assert.Equal(t, monitor.Expired, statuses["expired.example.com"])
}

func TestScanSingleFileLocation(t *testing.T) {
	dir := t.TempDir()
	path := writeCert(t, dir, "only.pem", certWithCN(t, "only.example.com", time.Now().Add(10*24*time.Hour)))

	cfg := monitor.Config{
		Locations:    []monitor.Location{{Path: path}},
		WarningDays:  30,
		CriticalDays: 7,
	}

	snap := monitor.NewScanner(cfg, testLogger()).Scan(context.Background())

	require.Equal(t, 1, len(snap.Entries))
	assert.Equal(t, "only.example.com", snap.Entries[0].Record.CommonName)
	assert.Equal(t, monitor.Warning, snap.Entries[0].Status)
}

func TestScanMissingLocation(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "ok.pem", certWithCN(t, "ok.example.com", time.Now().Add(90*24*time.Hour)))

	cfg := monitor.Config{
		Locations: []monitor.Location{
			{Path: filepath.Join(dir, "nope")},
			{Path: dir},
		},
		WarningDays:  30,
		CriticalDays: 7,
	}

	snap := monitor.NewScanner(cfg, testLogger()).Scan(context.Background())

	assert.Equal(t, 1, len(snap.Entries), "an unreadable location must not shadow the readable ones")
	require.Equal(t, 1, len(snap.Failures))
	assert.Equal(t, monitor.KindUnreadable, snap.Failures[0].Kind)
}

func TestScanOverlappingLocations(t *testing.T) {
	dir := t.TempDir()
	path := writeCert(t, dir, "web.pem", certWithCN(t, "web.example.com", time.Now().Add(90*24*time.Hour)))

	cfg := monitor.Config{
		Locations: []monitor.Location{
			{Path: dir},
			{Path: path, Role: "web"},
			{Path: path, Role: "web"},
		},
		WarningDays:  30,
		CriticalDays: 7,
	}

	snap := monitor.NewScanner(cfg, testLogger()).Scan(context.Background())

	require.Equal(t, 1, len(snap.Entries), "overlapping locations must yield a single entry")
	assert.Equal(t, 0, len(snap.Failures))

	registry := monitor.NewRegistry()
	registry.Update(snap)
	body := renderMetrics(t, registry)
	assert.Contains(t, body, `pki_monitor_cert_days_remaining{common_name="web.example.com"`)
	assert.Contains(t, body, "pki_monitor_scan_artifacts 1")
}

func TestScanDuplicateUnreadableLocation(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pem")

	cfg := monitor.Config{
		Locations: []monitor.Location{
			{Path: missing},
			{Path: missing},
		},
		WarningDays:  30,
		CriticalDays: 7,
	}

	snap := monitor.NewScanner(cfg, testLogger()).Scan(context.Background())

	assert.Equal(t, 0, len(snap.Entries))
	require.Equal(t, 1, len(snap.Failures), "a location listed twice must be reported once")
	assert.Equal(t, monitor.KindUnreadable, snap.Failures[0].Kind)
}

func TestScanVersionMonotonic(t *testing.T) {
	dir := t.TempDir()
	cfg := monitor.Config{
		Locations:    []monitor.Location{{Path: dir}},
		WarningDays:  30,
		CriticalDays: 7,
	}

	scanner := monitor.NewScanner(cfg, testLogger())
	first := scanner.Scan(context.Background())
	second := scanner.Scan(context.Background())

	assert.Greater(t, second.Version, first.Version)
	assert.False(t, second.TakenAt.Before(first.TakenAt))
}

func TestSnapshotLookup(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "a.pem", certWithCN(t, "a.example.com", time.Now().Add(90*24*time.Hour)))

	cfg := monitor.Config{
		Locations:    []monitor.Location{{Path: dir}},
		WarningDays:  30,
		CriticalDays: 7,
	}

	snap := monitor.NewScanner(cfg, testLogger()).Scan(context.Background())
	require.Equal(t, 1, len(snap.Entries))

	found, ok := snap.Lookup(snap.Entries[0].Record.ID())
	assert.True(t, ok)
	assert.Equal(t, snap.Entries[0].Record.Fingerprint, found.Record.Fingerprint)

	_, ok = snap.Lookup("deadbeef")
	assert.False(t, ok)
}
