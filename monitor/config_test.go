// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

const inventoryYAML = `locations:
  - path: /etc/certs/web.pem
    role: web
    ttl: 168h
  - path: /etc/certs/services
    role: internal
    common_name: internal.example.com
warning_days: 21
critical_days: 3
renew_at: warning
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	require.Nil(t, os.WriteFile(path, []byte(inventoryYAML), 0o644))

	cfg, err := monitor.LoadConfig(path)
	require.Nil(t, err)
	require.Nil(t, cfg.Validate())

	assert.Equal(t, 2, len(cfg.Locations))
	assert.Equal(t, "web", cfg.Locations[0].Role)
	assert.Equal(t, "168h", cfg.Locations[0].TTL)
	assert.Equal(t, "internal.example.com", cfg.Locations[1].CommonName)
	assert.Equal(t, 21, cfg.WarningDays)
	assert.Equal(t, 3, cfg.CriticalDays)
	assert.Equal(t, monitor.Warning, cfg.RenewAtStatus())
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	require.Nil(t, os.WriteFile(path, []byte("locations:\n  - path: /etc/certs/web.pem\n"), 0o644))

	cfg, err := monitor.LoadConfig(path)
	require.Nil(t, err)
	require.Nil(t, cfg.Validate())

	assert.Equal(t, monitor.DefWarningDays, cfg.WarningDays)
	assert.Equal(t, monitor.DefCriticalDays, cfg.CriticalDays)
	assert.Equal(t, monitor.Critical, cfg.RenewAtStatus())
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := monitor.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Contains(err, monitor.ErrReadConfig), fmt.Sprintf("expected %s got %s\n", monitor.ErrReadConfig, err))
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		desc string
		cfg  monitor.Config
		err  error
	}{
		{
			desc: "valid",
			cfg: monitor.Config{
				Locations:    []monitor.Location{{Path: "/etc/certs"}},
				WarningDays:  30,
				CriticalDays: 7,
				RenewAt:      "critical",
			},
		},
		{
			desc: "no locations",
			cfg: monitor.Config{
				WarningDays:  30,
				CriticalDays: 7,
				RenewAt:      "critical",
			},
			err: monitor.ErrNoLocations,
		},
		{
			desc: "location without path",
			cfg: monitor.Config{
				Locations:    []monitor.Location{{Role: "web"}},
				WarningDays:  30,
				CriticalDays: 7,
				RenewAt:      "critical",
			},
			err: monitor.ErrNoLocations,
		},
		{
			desc: "inverted thresholds",
			cfg: monitor.Config{
				Locations:    []monitor.Location{{Path: "/etc/certs"}},
				WarningDays:  7,
				CriticalDays: 30,
				RenewAt:      "critical",
			},
			err: monitor.ErrInvalidThresholds,
		},
		{
			desc: "negative critical threshold",
			cfg: monitor.Config{
				Locations:    []monitor.Location{{Path: "/etc/certs"}},
				WarningDays:  30,
				CriticalDays: -1,
				RenewAt:      "critical",
			},
			err: monitor.ErrInvalidThresholds,
		},
		{
			desc: "unknown renew trigger",
			cfg: monitor.Config{
				Locations:    []monitor.Location{{Path: "/etc/certs"}},
				WarningDays:  30,
				CriticalDays: 7,
				RenewAt:      "someday",
			},
			err: monitor.ErrInvalidStatus,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.err == nil {
				assert.Nil(t, err)
				return
			}
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		})
	}
}
