// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package sdk is the HTTP client for the monitor service API.
package sdk

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"moul.io/http2curl"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

// CTJSON represents JSON content type.
const CTJSON ContentType = "application/json"

// ContentType represents all possible content types.
type ContentType string

var _ SDK = (*pkiSDK)(nil)

// ErrFailedFetch indicates that fetching of entity data failed.
var ErrFailedFetch = errors.New("failed to fetch entity")

// PageMetadata contains page related metadata.
type PageMetadata struct {
	Total  uint64 `json:"total"`
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
	Status string `json:"status,omitempty"`
	Role   string `json:"role,omitempty"`
}

// SDK contains the monitor service API.
type SDK interface {
	// Certs returns a page of monitored certificates.
	//
	// example:
	//  pm := sdk.PageMetadata{
	//    Offset: 0,
	//    Limit:  10,
	//    Status: "critical",
	//  }
	//  page, _ := sdk.Certs(ctx, pm)
	//  fmt.Println(page)
	Certs(ctx context.Context, pm PageMetadata) (CertsPage, errors.SDKError)

	// Cert returns one monitored certificate by ID.
	//
	// example:
	//  cert, _ := sdk.Cert(ctx, "certID")
	//  fmt.Println(cert)
	Cert(ctx context.Context, certID string) (Cert, errors.SDKError)

	// Snapshot returns the full inventory snapshot.
	//
	// example:
	//  snap, _ := sdk.Snapshot(ctx)
	//  fmt.Println(snap)
	Snapshot(ctx context.Context) (Snapshot, errors.SDKError)

	// RenewCert triggers a renewal of one certificate.
	//
	// example:
	//  outcome, _ := sdk.RenewCert(ctx, "certID")
	//  fmt.Println(outcome)
	RenewCert(ctx context.Context, certID string) (Outcome, errors.SDKError)

	// RevokeCert revokes one certificate and returns the revocation time.
	//
	// example:
	//  t, _ := sdk.RevokeCert(ctx, "certID")
	//  fmt.Println(t)
	RevokeCert(ctx context.Context, certID string) (RevokeCertRes, errors.SDKError)

	// Renewals returns the retained renewal outcome history.
	//
	// example:
	//  outcomes, _ := sdk.Renewals(ctx)
	//  fmt.Println(outcomes)
	Renewals(ctx context.Context) ([]Outcome, errors.SDKError)

	// Health returns the monitor service health check.
	//
	// example:
	//  health, _ := sdk.Health(ctx)
	//  fmt.Println(health)
	Health(ctx context.Context) (HealthInfo, errors.SDKError)
}

type pkiSDK struct {
	monitorURL     string
	msgContentType ContentType
	client         *http.Client
	curlFlag       bool
}

// Config contains sdk configuration parameters.
type Config struct {
	MonitorURL string

	MsgContentType  ContentType
	TLSVerification bool
	CurlFlag        bool
}

// NewSDK returns a new monitor SDK instance.
func NewSDK(conf Config) SDK {
	return &pkiSDK{
		monitorURL: conf.MonitorURL,

		msgContentType: conf.MsgContentType,
		client: &http.Client{Transport: otelhttp.NewTransport(&http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: !conf.TLSVerification,
			},
		})},
		curlFlag: conf.CurlFlag,
	}
}

// processRequest creates and sends a new HTTP request, and checks for errors in the HTTP response.
// It then returns the response headers, the response body, and the associated error(s) (if any).
func (sdk pkiSDK) processRequest(ctx context.Context, method, reqUrl string, data []byte, headers map[string]string, expectedRespCodes ...int) (http.Header, []byte, errors.SDKError) {
	req, err := http.NewRequestWithContext(ctx, method, reqUrl, bytes.NewReader(data))
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	// Sets a default value for the Content-Type.
	// Overridden if Content-Type is passed in the headers arguments.
	req.Header.Add("Content-Type", string(CTJSON))

	for key, value := range headers {
		req.Header.Add(key, value)
	}

	if sdk.curlFlag {
		curlCommand, err := http2curl.GetCurlCommand(req)
		if err != nil {
			return nil, nil, errors.NewSDKError(err)
		}
		log.Println(curlCommand.String())
	}

	resp, err := sdk.client.Do(req)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}
	defer resp.Body.Close()

	sdkerr := errors.CheckError(resp, expectedRespCodes...)
	if sdkerr != nil {
		return make(http.Header), []byte{}, sdkerr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	return resp.Header, body, nil
}

func (sdk pkiSDK) withQueryParams(baseURL, endpoint string, pm PageMetadata) string {
	q := pm.query()
	if q == "" {
		return baseURL + "/" + endpoint
	}
	return baseURL + "/" + endpoint + "?" + q
}

func (pm PageMetadata) query() string {
	q := url.Values{}
	if pm.Offset != 0 {
		q.Add("offset", strconv.FormatUint(pm.Offset, 10))
	}
	if pm.Limit != 0 {
		q.Add("limit", strconv.FormatUint(pm.Limit, 10))
	}
	if pm.Status != "" {
		q.Add("status", pm.Status)
	}
	if pm.Role != "" {
		q.Add("role", pm.Role)
	}

	return q.Encode()
}
