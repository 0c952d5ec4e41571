// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
)

var _ monitor.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     monitor.Service
}

// NewMetrics returns a service middleware that instruments request counts
// and latencies per method.
func NewMetrics(svc monitor.Service, counter metrics.Counter, latency metrics.Histogram) monitor.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) RunCycle(ctx context.Context) (monitor.Snapshot, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "run_cycle").Add(1)
		mm.latency.With("method", "run_cycle").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.RunCycle(ctx)
}

func (mm *metricsMiddleware) ViewSnapshot(ctx context.Context) monitor.Snapshot {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_snapshot").Add(1)
		mm.latency.With("method", "view_snapshot").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ViewSnapshot(ctx)
}

func (mm *metricsMiddleware) ListCerts(ctx context.Context, pm monitor.PageMetadata) (monitor.CertPage, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list_certs").Add(1)
		mm.latency.With("method", "list_certs").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ListCerts(ctx, pm)
}

func (mm *metricsMiddleware) ViewCert(ctx context.Context, certID string) (monitor.Entry, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_cert").Add(1)
		mm.latency.With("method", "view_cert").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ViewCert(ctx, certID)
}

func (mm *metricsMiddleware) RenewCert(ctx context.Context, certID string) (monitor.Outcome, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "renew_cert").Add(1)
		mm.latency.With("method", "renew_cert").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.RenewCert(ctx, certID)
}

func (mm *metricsMiddleware) RevokeCert(ctx context.Context, certID string) (time.Time, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "revoke_cert").Add(1)
		mm.latency.With("method", "revoke_cert").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.RevokeCert(ctx, certID)
}

func (mm *metricsMiddleware) Outcomes(ctx context.Context) []monitor.Outcome {
	defer func(begin time.Time) {
		mm.counter.With("method", "list_outcomes").Add(1)
		mm.latency.With("method", "list_outcomes").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.Outcomes(ctx)
}
