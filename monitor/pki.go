// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"time"
)

// Cert is the material returned by the issuing backend for one certificate.
type Cert struct {
	SerialNumber string    `json:"serial_number"`
	Certificate  string    `json:"certificate,omitempty"`
	Key          string    `json:"key,omitempty"`
	CAChain      []string  `json:"ca_chain,omitempty"`
	IssuingCA    string    `json:"issuing_ca,omitempty"`
	CommonName   string    `json:"common_name,omitempty"`
	ExpiryTime   time.Time `json:"expiry_time"`
}

// Agent represents the PKI issuing backend. Errors are opaque causes
// surfaced up, not interpreted beyond success and failure.
type Agent interface {
	// Issue requests a certificate for commonName under the given role.
	// An empty role selects the agent's configured default.
	Issue(ctx context.Context, role, commonName, ttl string, ipSANs []string) (Cert, error)

	// View retrieves a certificate by its serial number.
	View(ctx context.Context, serialNumber string) (Cert, error)

	// Revoke revokes a certificate by its serial number.
	Revoke(ctx context.Context, serialNumber string) error

	// HealthCheck reports whether the issuing backend is reachable.
	HealthCheck(ctx context.Context) bool
}
