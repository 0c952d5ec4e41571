// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

var (
	// ErrNoLocations indicates an inventory with no scan locations.
	ErrNoLocations = errors.New("no scan locations configured")

	// ErrInvalidThresholds indicates inverted or negative day thresholds.
	ErrInvalidThresholds = errors.New("warning threshold must be greater than critical threshold, critical must not be negative")

	// ErrReadConfig indicates the inventory file could not be loaded.
	ErrReadConfig = errors.New("failed to read inventory configuration")
)

// Default classification thresholds, in days.
const (
	DefWarningDays  = 30
	DefCriticalDays = 7
)

// Location describes one managed certificate location: either a single PEM
// file or a directory of them, together with the issuing role used to renew
// certificates found there.
type Location struct {
	// Path of the artifact file or directory.
	Path string `yaml:"path" json:"path"`
	// Role on the issuing backend used for renewals. Empty selects the
	// agent's default role.
	Role string `yaml:"role" json:"role"`
	// CommonName expected on renewed certificates. Empty keeps the common
	// name of the artifact being replaced.
	CommonName string `yaml:"common_name" json:"common_name,omitempty"`
	// TTL requested on renewal, as an issuing backend duration string.
	// Empty selects the configured default.
	TTL string `yaml:"ttl" json:"ttl,omitempty"`
	// KeyPath is where renewed private keys are written. Empty derives
	// the path from the certificate artifact.
	KeyPath string `yaml:"key_path" json:"-"`
}

// Config is the static inventory configuration loaded once at startup.
type Config struct {
	Locations    []Location `yaml:"locations"`
	WarningDays  int        `yaml:"warning_days"`
	CriticalDays int        `yaml:"critical_days"`
	// RenewAt names the least severe tier that triggers renewal,
	// "critical" by default.
	RenewAt string `yaml:"renew_at"`
}

// LoadConfig reads the YAML inventory file at path and applies defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(ErrReadConfig, err)
	}

	cfg := Config{
		WarningDays:  DefWarningDays,
		CriticalDays: DefCriticalDays,
		RenewAt:      Critical.String(),
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(ErrReadConfig, err)
	}

	return cfg, nil
}

// Validate refuses configurations the daemon must not start with.
func (c Config) Validate() error {
	if len(c.Locations) == 0 {
		return ErrNoLocations
	}
	for _, loc := range c.Locations {
		if loc.Path == "" {
			return errors.Wrap(ErrNoLocations, errors.ErrEmptyPath)
		}
	}
	if c.CriticalDays < 0 || c.WarningDays <= c.CriticalDays {
		return ErrInvalidThresholds
	}
	if _, err := ParseStatus(c.RenewAt); err != nil {
		return err
	}

	return nil
}

// RenewAtStatus returns the renewal trigger tier. Validate must have
// accepted the configuration first.
func (c Config) RenewAtStatus() Status {
	s, err := ParseStatus(c.RenewAt)
	if err != nil {
		return Critical
	}
	return s
}
