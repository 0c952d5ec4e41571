// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apiutil "github.com/sy-cmd/vault-pki-toolkit/api/http/util"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

const (
	certsEndpoint    = "certs"
	snapshotEndpoint = "snapshot"
	renewalsEndpoint = "renewals"
	healthEndpoint   = "health"
)

// Record represents one parsed certificate artifact.
type Record struct {
	Path         string    `json:"path"`
	CommonName   string    `json:"common_name"`
	SerialNumber string    `json:"serial_number"`
	Issuer       string    `json:"issuer"`
	NotBefore    time.Time `json:"not_before"`
	NotAfter     time.Time `json:"not_after"`
	KeyBits      int       `json:"key_bits"`
	Fingerprint  string    `json:"fingerprint"`
}

// Cert represents one classified certificate.
type Cert struct {
	Record        Record `json:"record"`
	Status        string `json:"status"`
	DaysRemaining int    `json:"days_remaining"`
}

// CertsPage contains a page of certificates.
type CertsPage struct {
	Total  uint64 `json:"total"`
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
	Certs  []Cert `json:"certs"`
}

// ParseFailure represents one artifact the scanner could not use.
type ParseFailure struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// Snapshot represents the full inventory view from one scan.
type Snapshot struct {
	Version  uint64         `json:"version"`
	TakenAt  time.Time      `json:"taken_at"`
	Entries  []Cert         `json:"entries"`
	Failures []ParseFailure `json:"failures,omitempty"`
}

// Outcome represents one renewal attempt.
type Outcome struct {
	Path        string    `json:"path"`
	Role        string    `json:"role,omitempty"`
	Serial      string    `json:"serial_number,omitempty"`
	Result      string    `json:"result"`
	NewSerial   string    `json:"new_serial_number,omitempty"`
	NewNotAfter time.Time `json:"new_not_after,omitempty"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
}

// RevokeCertRes contains the revocation time.
type RevokeCertRes struct {
	RevokedAt time.Time `json:"revoked_at"`
}

// HealthInfo contains service health check data.
type HealthInfo struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Description string `json:"description"`
	InstanceID  string `json:"instance_id"`
}

func (sdk pkiSDK) Certs(ctx context.Context, pm PageMetadata) (CertsPage, errors.SDKError) {
	url := sdk.withQueryParams(sdk.monitorURL, certsEndpoint, pm)

	_, body, sdkerr := sdk.processRequest(ctx, http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return CertsPage{}, sdkerr
	}

	var page CertsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return CertsPage{}, errors.NewSDKError(err)
	}
	return page, nil
}

func (sdk pkiSDK) Cert(ctx context.Context, certID string) (Cert, errors.SDKError) {
	if certID == "" {
		return Cert{}, errors.NewSDKError(apiutil.ErrMissingID)
	}
	url := fmt.Sprintf("%s/%s/%s", sdk.monitorURL, certsEndpoint, certID)

	_, body, sdkerr := sdk.processRequest(ctx, http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Cert{}, sdkerr
	}

	var cert Cert
	if err := json.Unmarshal(body, &cert); err != nil {
		return Cert{}, errors.NewSDKError(err)
	}
	return cert, nil
}

func (sdk pkiSDK) Snapshot(ctx context.Context) (Snapshot, errors.SDKError) {
	url := fmt.Sprintf("%s/%s", sdk.monitorURL, snapshotEndpoint)

	_, body, sdkerr := sdk.processRequest(ctx, http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Snapshot{}, sdkerr
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return Snapshot{}, errors.NewSDKError(err)
	}
	return snap, nil
}

func (sdk pkiSDK) RenewCert(ctx context.Context, certID string) (Outcome, errors.SDKError) {
	if certID == "" {
		return Outcome{}, errors.NewSDKError(apiutil.ErrMissingID)
	}
	url := fmt.Sprintf("%s/%s/%s/renew", sdk.monitorURL, certsEndpoint, certID)

	_, body, sdkerr := sdk.processRequest(ctx, http.MethodPost, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Outcome{}, sdkerr
	}

	var outcome Outcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		return Outcome{}, errors.NewSDKError(err)
	}
	return outcome, nil
}

func (sdk pkiSDK) RevokeCert(ctx context.Context, certID string) (RevokeCertRes, errors.SDKError) {
	if certID == "" {
		return RevokeCertRes{}, errors.NewSDKError(apiutil.ErrMissingID)
	}
	url := fmt.Sprintf("%s/%s/%s/revoke", sdk.monitorURL, certsEndpoint, certID)

	_, body, sdkerr := sdk.processRequest(ctx, http.MethodPost, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return RevokeCertRes{}, sdkerr
	}

	var res RevokeCertRes
	if err := json.Unmarshal(body, &res); err != nil {
		return RevokeCertRes{}, errors.NewSDKError(err)
	}
	return res, nil
}

func (sdk pkiSDK) Renewals(ctx context.Context) ([]Outcome, errors.SDKError) {
	url := fmt.Sprintf("%s/%s", sdk.monitorURL, renewalsEndpoint)

	_, body, sdkerr := sdk.processRequest(ctx, http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return nil, sdkerr
	}

	var res struct {
		Outcomes []Outcome `json:"outcomes"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.NewSDKError(err)
	}
	return res.Outcomes, nil
}

func (sdk pkiSDK) Health(ctx context.Context) (HealthInfo, errors.SDKError) {
	url := fmt.Sprintf("%s/%s", sdk.monitorURL, healthEndpoint)

	_, body, sdkerr := sdk.processRequest(ctx, http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return HealthInfo{}, sdkerr
	}

	var health HealthInfo
	if err := json.Unmarshal(body, &health); err != nil {
		return HealthInfo{}, errors.NewSDKError(err)
	}
	return health, nil
}
