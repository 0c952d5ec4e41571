// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
)

var _ monitor.Service = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    monitor.Service
}

// NewTracing returns a service middleware that opens one span per operation.
func NewTracing(svc monitor.Service, tracer trace.Tracer) monitor.Service {
	return &tracingMiddleware{tracer, svc}
}

func (tm *tracingMiddleware) RunCycle(ctx context.Context) (monitor.Snapshot, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_run_cycle")
	defer span.End()

	return tm.svc.RunCycle(ctx)
}

func (tm *tracingMiddleware) ViewSnapshot(ctx context.Context) monitor.Snapshot {
	ctx, span := tm.tracer.Start(ctx, "svc_view_snapshot")
	defer span.End()

	return tm.svc.ViewSnapshot(ctx)
}

func (tm *tracingMiddleware) ListCerts(ctx context.Context, pm monitor.PageMetadata) (monitor.CertPage, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_list_certs", trace.WithAttributes(
		attribute.Int64("offset", int64(pm.Offset)),
		attribute.Int64("limit", int64(pm.Limit)),
		attribute.String("status", pm.Status),
	))
	defer span.End()

	return tm.svc.ListCerts(ctx, pm)
}

func (tm *tracingMiddleware) ViewCert(ctx context.Context, certID string) (monitor.Entry, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_view_cert", trace.WithAttributes(
		attribute.String("cert_id", certID),
	))
	defer span.End()

	return tm.svc.ViewCert(ctx, certID)
}

func (tm *tracingMiddleware) RenewCert(ctx context.Context, certID string) (monitor.Outcome, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_renew_cert", trace.WithAttributes(
		attribute.String("cert_id", certID),
	))
	defer span.End()

	return tm.svc.RenewCert(ctx, certID)
}

func (tm *tracingMiddleware) RevokeCert(ctx context.Context, certID string) (time.Time, error) {
	ctx, span := tm.tracer.Start(ctx, "svc_revoke_cert", trace.WithAttributes(
		attribute.String("cert_id", certID),
	))
	defer span.End()

	return tm.svc.RevokeCert(ctx, certID)
}

func (tm *tracingMiddleware) Outcomes(ctx context.Context) []monitor.Outcome {
	ctx, span := tm.tracer.Start(ctx, "svc_list_outcomes")
	defer span.End()

	return tm.svc.Outcomes(ctx)
}
