// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
)

func renderMetrics(t *testing.T, registry *monitor.Registry) string {
	t.Helper()

	srv := httptest.NewServer(registry.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.Nil(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.Nil(t, err)

	return string(body)
}

func testSnapshot() monitor.Snapshot {
	return monitor.Snapshot{
		Version:  7,
		TakenAt:  time.Now().UTC(),
		Duration: 42 * time.Millisecond,
		Entries: []monitor.Entry{
			{
				Record:        monitor.Record{Path: "/etc/certs/web.pem", CommonName: "web.example.com"},
				Status:        monitor.Critical,
				DaysRemaining: 3,
			},
			{
				Record:        monitor.Record{Path: "/etc/certs/db.pem", CommonName: "db.example.com"},
				Status:        monitor.Healthy,
				DaysRemaining: 120,
			},
		},
		Failures: []monitor.ParseFailure{
			{Path: "/etc/certs/junk.pem", Kind: monitor.KindMalformed, Reason: "no CERTIFICATE PEM block"},
		},
	}
}

func TestRegistryExposition(t *testing.T) {
	registry := monitor.NewRegistry()
	registry.Update(testSnapshot())
	registry.SetBackendUp(true)

	body := renderMetrics(t, registry)

	assert.Contains(t, body, `pki_monitor_cert_days_remaining{common_name="web.example.com",path="/etc/certs/web.pem"} 3`)
	assert.Contains(t, body, `pki_monitor_cert_days_remaining{common_name="db.example.com",path="/etc/certs/db.pem"} 120`)
	assert.Contains(t, body, `pki_monitor_cert_status{path="/etc/certs/web.pem",tier="critical"} 1`)
	assert.Contains(t, body, `pki_monitor_cert_status{path="/etc/certs/web.pem",tier="healthy"} 0`)
	assert.Contains(t, body, `pki_monitor_cert_unreadable{kind="malformed",path="/etc/certs/junk.pem"} 1`)
	assert.Contains(t, body, "pki_monitor_scan_artifacts 2")
	assert.Contains(t, body, "pki_monitor_scan_failures 1")
	assert.Contains(t, body, "pki_monitor_backend_up 1")
}

func TestRegistryReplacesInventory(t *testing.T) {
	registry := monitor.NewRegistry()
	registry.Update(testSnapshot())

	next := monitor.Snapshot{
		Version: 8,
		Entries: []monitor.Entry{
			{
				Record:        monitor.Record{Path: "/etc/certs/db.pem", CommonName: "db.example.com"},
				Status:        monitor.Healthy,
				DaysRemaining: 119,
			},
		},
	}
	registry.Update(next)

	body := renderMetrics(t, registry)
	assert.NotContains(t, body, "web.example.com", "identities gone from the snapshot must leave the exposition")
	assert.Contains(t, body, "pki_monitor_scan_artifacts 1")
	assert.Contains(t, body, "pki_monitor_backend_up 0")
}

func TestRegistryRenewalCounters(t *testing.T) {
	registry := monitor.NewRegistry()

	registry.RecordOutcome(monitor.Outcome{Result: monitor.Succeeded, Role: "web"})
	registry.RecordOutcome(monitor.Outcome{Result: monitor.Succeeded, Role: "web"})
	registry.RecordOutcome(monitor.Outcome{Result: monitor.Failed, Role: "web"})
	registry.RecordOutcome(monitor.Outcome{Result: monitor.Succeeded})

	// Counters survive inventory replacement.
	registry.Update(monitor.Snapshot{Version: 9})

	body := renderMetrics(t, registry)
	assert.Contains(t, body, `pki_monitor_renewals_total{result="succeeded",role="web"} 2`)
	assert.Contains(t, body, `pki_monitor_renewals_total{result="failed",role="web"} 1`)
	assert.Contains(t, body, `pki_monitor_renewals_total{result="succeeded",role="default"} 1`)
}

func TestRegistryConcurrentRenderAndUpdate(t *testing.T) {
	registry := monitor.NewRegistry()
	registry.Update(testSnapshot())

	srv := httptest.NewServer(registry.Handler())
	defer srv.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				registry.Update(testSnapshot())
				registry.RecordOutcome(monitor.Outcome{Result: monitor.Succeeded, Role: "web"})
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				resp, err := srv.Client().Get(srv.URL)
				if assert.Nil(t, err) {
					_, _ = io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()
}
