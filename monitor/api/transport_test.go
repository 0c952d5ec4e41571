// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package api_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
	httpapi "github.com/sy-cmd/vault-pki-toolkit/monitor/api"
	"github.com/sy-cmd/vault-pki-toolkit/monitor/mocks"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
	svcerr "github.com/sy-cmd/vault-pki-toolkit/pkg/errors/service"
)

const instanceID = "5de9b29a-feb9-11ed-be56-0242ac120002"

func newMonitorServer(svc monitor.Service) *httptest.Server {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	registry := monitor.NewRegistry()

	return httptest.NewServer(httpapi.MakeHandler(svc, registry, logger, instanceID))
}

func TestListCertsEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	cases := []struct {
		desc   string
		url    string
		pm     monitor.PageMetadata
		svcErr error
		status int
	}{
		{
			desc:   "list with defaults",
			url:    "/certs",
			pm:     monitor.PageMetadata{Offset: 0, Limit: 10},
			status: http.StatusOK,
		},
		{
			desc:   "list with paging and filters",
			url:    "/certs?offset=5&limit=2&status=critical&role=web",
			pm:     monitor.PageMetadata{Offset: 5, Limit: 2, Status: "critical", Role: "web"},
			status: http.StatusOK,
		},
		{
			desc:   "list with invalid limit",
			url:    "/certs?limit=abc",
			status: http.StatusBadRequest,
		},
		{
			desc:   "list with oversized limit",
			url:    "/certs?limit=1000",
			status: http.StatusBadRequest,
		},
		{
			desc:   "list with service failure",
			url:    "/certs",
			pm:     monitor.PageMetadata{Offset: 0, Limit: 10},
			svcErr: svcerr.ErrViewEntity,
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("ListCerts", mock.Anything, tc.pm).Return(monitor.CertPage{PageMetadata: tc.pm}, tc.svcErr)

			resp, err := http.Get(srv.URL + tc.url)
			require.Nil(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode, fmt.Sprintf("%s: expected %d got %d\n", tc.desc, tc.status, resp.StatusCode))
			svcCall.Unset()
		})
	}
}

func TestViewCertEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	entry := monitor.Entry{
		Record: monitor.Record{
			Path:       "/etc/certs/web.pem",
			CommonName: "web.example.com",
		},
		Status:        monitor.Warning,
		DaysRemaining: 12,
	}

	svcCall := svc.On("ViewCert", mock.Anything, "abc123").Return(entry, nil)
	resp, err := http.Get(srv.URL + "/certs/abc123")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got monitor.Entry
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "web.example.com", got.Record.CommonName)
	assert.Equal(t, monitor.Warning, got.Status)
	svcCall.Unset()

	svc.On("ViewCert", mock.Anything, "missing").Return(monitor.Entry{}, errors.Wrap(svcerr.ErrNotFound, errors.New("missing")))
	resp, err = http.Get(srv.URL + "/certs/missing")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenewCertEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	outcome := monitor.Outcome{
		Path:      "/etc/certs/web.pem",
		Role:      "web",
		Result:    monitor.Succeeded,
		NewSerial: "aa:bb",
		At:        time.Now().UTC(),
	}

	svcCall := svc.On("RenewCert", mock.Anything, "abc123").Return(outcome, nil)
	resp, err := http.Post(srv.URL+"/certs/abc123/renew", "application/json", nil)
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "succeeded", got["result"])
	svcCall.Unset()

	svc.On("RenewCert", mock.Anything, "missing").Return(monitor.Outcome{}, errors.Wrap(svcerr.ErrNotFound, errors.New("missing")))
	resp, err = http.Post(srv.URL+"/certs/missing/renew", "application/json", nil)
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRevokeCertEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	revokedAt := time.Now().UTC().Truncate(time.Second)
	svc.On("RevokeCert", mock.Anything, "abc123").Return(revokedAt, nil)

	resp, err := http.Post(srv.URL+"/certs/abc123/revoke", "application/json", nil)
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		RevokedAt time.Time `json:"revoked_at"`
	}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, revokedAt, got.RevokedAt)
}

func TestSnapshotEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	svc.On("ViewSnapshot", mock.Anything).Return(monitor.Snapshot{Version: 3})

	resp, err := http.Get(srv.URL + "/snapshot")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var snap monitor.Snapshot
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, uint64(3), snap.Version)
}

func TestRenewalsEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	svc.On("Outcomes", mock.Anything).Return([]monitor.Outcome{{Result: monitor.Failed, Path: "/etc/certs/web.pem"}})

	resp, err := http.Get(srv.URL + "/renewals")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Outcomes []monitor.Outcome `json:"outcomes"`
	}
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, 1, len(got.Outcomes))
	assert.Equal(t, monitor.Failed, got.Outcomes[0].Result)
}

func TestHealthEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "pass", health["status"])
	assert.Equal(t, instanceID, health["instance_id"])
}

func TestMetricsEndpoint(t *testing.T) {
	svc := new(mocks.Service)
	srv := newMonitorServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.Nil(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
