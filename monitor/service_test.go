// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
	"github.com/sy-cmd/vault-pki-toolkit/monitor/mocks"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
	svcerr "github.com/sy-cmd/vault-pki-toolkit/pkg/errors/service"
)

func newTestService(t *testing.T, dir string, agent *mocks.Agent) monitor.Service {
	t.Helper()

	cfg := monitor.Config{
		Locations:    []monitor.Location{{Path: dir, Role: "web"}},
		WarningDays:  30,
		CriticalDays: 7,
	}
	require.Nil(t, cfg.Validate())

	scanner := monitor.NewScanner(cfg, testLogger())
	registry := monitor.NewRegistry()
	coordinator := monitor.NewCoordinator(agent, monitor.CoordinatorConfig{
		RenewAt:     monitor.Critical,
		DefaultRole: "web",
	}, testLogger())

	return monitor.New(scanner, coordinator, agent, registry, 4, testLogger())
}

func TestRunCycleRenewsDueCerts(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "healthy.pem", certWithCN(t, "healthy.example.com", time.Now().Add(90*24*time.Hour)))
	expiredPath := writeCert(t, dir, "expired.pem", certWithCN(t, "expired.example.com", time.Now().Add(-24*time.Hour)))

	issuedPEM := certWithCN(t, "expired.example.com", time.Now().Add(60*24*time.Hour))
	agent := new(mocks.Agent)
	agent.On("HealthCheck", mock.Anything).Return(true)
	agent.On("Issue", mock.Anything, "web", "expired.example.com", "720h", mock.Anything).Return(monitor.Cert{Certificate: string(issuedPEM), Key: "key"}, nil)

	svc := newTestService(t, dir, agent)

	snap, err := svc.RunCycle(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 2, len(snap.Entries))

	agent.AssertNumberOfCalls(t, "Issue", 1)

	renewed, rerr := monitor.ReadRecord(expiredPath)
	require.Nil(t, rerr)
	assert.True(t, renewed.NotAfter.After(time.Now()), "the expired artifact must be replaced with a live one")

	outcomes := svc.Outcomes(context.Background())
	require.NotEmpty(t, outcomes)
	assert.Equal(t, monitor.Succeeded, outcomes[len(outcomes)-1].Result)

	// The next cycle observes the renewed artifact as healthy.
	next, err := svc.RunCycle(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 0, next.CountByStatus(monitor.Expired))
	assert.Equal(t, 2, next.CountByStatus(monitor.Healthy))
}

func TestRunCycleBackendDown(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "expired.pem", certWithCN(t, "expired.example.com", time.Now().Add(-24*time.Hour)))

	agent := new(mocks.Agent)
	agent.On("HealthCheck", mock.Anything).Return(false)

	svc := newTestService(t, dir, agent)

	snap, err := svc.RunCycle(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 1, len(snap.Entries), "classification still happens when the backend is down")
	agent.AssertNumberOfCalls(t, "Issue", 0)
}

func TestListCerts(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "a.pem", certWithCN(t, "a.example.com", time.Now().Add(90*24*time.Hour)))
	writeCert(t, dir, "b.pem", certWithCN(t, "b.example.com", time.Now().Add(15*24*time.Hour)))
	writeCert(t, dir, "c.pem", certWithCN(t, "c.example.com", time.Now().Add(2*24*time.Hour)))

	agent := new(mocks.Agent)
	agent.On("HealthCheck", mock.Anything).Return(false)

	svc := newTestService(t, dir, agent)
	_, err := svc.RunCycle(context.Background())
	require.Nil(t, err)

	cases := []struct {
		desc  string
		pm    monitor.PageMetadata
		total uint64
		count int
		err   error
	}{
		{
			desc:  "list all",
			pm:    monitor.PageMetadata{Limit: 10},
			total: 3,
			count: 3,
		},
		{
			desc:  "filter critical",
			pm:    monitor.PageMetadata{Limit: 10, Status: "critical"},
			total: 1,
			count: 1,
		},
		{
			desc:  "filter by role",
			pm:    monitor.PageMetadata{Limit: 10, Role: "web"},
			total: 3,
			count: 3,
		},
		{
			desc:  "filter by unknown role",
			pm:    monitor.PageMetadata{Limit: 10, Role: "db"},
			total: 0,
			count: 0,
		},
		{
			desc:  "paging window",
			pm:    monitor.PageMetadata{Offset: 1, Limit: 1},
			total: 3,
			count: 1,
		},
		{
			desc:  "offset beyond total",
			pm:    monitor.PageMetadata{Offset: 10, Limit: 10},
			total: 3,
			count: 0,
		},
		{
			desc: "invalid status filter",
			pm:   monitor.PageMetadata{Limit: 10, Status: "bogus"},
			err:  svcerr.ErrViewEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			page, err := svc.ListCerts(context.Background(), tc.pm)
			if tc.err != nil {
				assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tc.total, page.Total, fmt.Sprintf("%s: expected total %d got %d\n", tc.desc, tc.total, page.Total))
			assert.Equal(t, tc.count, len(page.Certs), fmt.Sprintf("%s: expected %d certs got %d\n", tc.desc, tc.count, len(page.Certs)))
		})
	}
}

func TestViewCert(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "a.pem", certWithCN(t, "a.example.com", time.Now().Add(90*24*time.Hour)))

	agent := new(mocks.Agent)
	agent.On("HealthCheck", mock.Anything).Return(false)

	svc := newTestService(t, dir, agent)
	snap, err := svc.RunCycle(context.Background())
	require.Nil(t, err)
	require.Equal(t, 1, len(snap.Entries))

	entry, err := svc.ViewCert(context.Background(), snap.Entries[0].Record.ID())
	require.Nil(t, err)
	assert.Equal(t, "a.example.com", entry.Record.CommonName)

	_, err = svc.ViewCert(context.Background(), "deadbeef")
	assert.True(t, errors.Contains(err, svcerr.ErrNotFound), fmt.Sprintf("expected %s got %s\n", svcerr.ErrNotFound, err))
}

func TestRenewCertManual(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "a.pem", certWithCN(t, "a.example.com", time.Now().Add(90*24*time.Hour)))

	issuedPEM := certWithCN(t, "a.example.com", time.Now().Add(120*24*time.Hour))
	agent := new(mocks.Agent)
	agent.On("HealthCheck", mock.Anything).Return(false)
	agent.On("Issue", mock.Anything, "web", "a.example.com", "720h", mock.Anything).Return(monitor.Cert{Certificate: string(issuedPEM), Key: "key"}, nil)

	svc := newTestService(t, dir, agent)
	snap, err := svc.RunCycle(context.Background())
	require.Nil(t, err)
	require.Equal(t, 1, len(snap.Entries))
	require.Equal(t, monitor.Healthy, snap.Entries[0].Status)

	// A manual renewal bypasses the tier trigger.
	outcome, err := svc.RenewCert(context.Background(), snap.Entries[0].Record.ID())
	require.Nil(t, err)
	assert.Equal(t, monitor.Succeeded, outcome.Result)
	agent.AssertNumberOfCalls(t, "Issue", 1)

	_, err = svc.RenewCert(context.Background(), "deadbeef")
	assert.True(t, errors.Contains(err, svcerr.ErrNotFound), fmt.Sprintf("expected %s got %s\n", svcerr.ErrNotFound, err))
}

func TestRevokeCert(t *testing.T) {
	dir := t.TempDir()
	writeCert(t, dir, "a.pem", certWithCN(t, "a.example.com", time.Now().Add(90*24*time.Hour)))

	agent := new(mocks.Agent)
	agent.On("HealthCheck", mock.Anything).Return(false)

	svc := newTestService(t, dir, agent)
	snap, err := svc.RunCycle(context.Background())
	require.Nil(t, err)
	require.Equal(t, 1, len(snap.Entries))

	serial := snap.Entries[0].Record.SerialNumber

	revokeCall := agent.On("Revoke", mock.Anything, serial).Return(nil)
	revokedAt, err := svc.RevokeCert(context.Background(), snap.Entries[0].Record.ID())
	require.Nil(t, err)
	assert.False(t, revokedAt.IsZero())
	revokeCall.Unset()

	agent.On("Revoke", mock.Anything, serial).Return(fmt.Errorf("sealed"))
	_, err = svc.RevokeCert(context.Background(), snap.Entries[0].Record.ID())
	assert.True(t, errors.Contains(err, monitor.ErrRevoke), fmt.Sprintf("expected %s got %s\n", monitor.ErrRevoke, err))

	_, err = svc.RevokeCert(context.Background(), "deadbeef")
	assert.True(t, errors.Contains(err, svcerr.ErrNotFound), fmt.Sprintf("expected %s got %s\n", svcerr.ErrNotFound, err))
}
