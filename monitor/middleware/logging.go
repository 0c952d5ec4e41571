// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
)

var _ monitor.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    monitor.Service
}

// NewLogging returns a service middleware that logs every operation with
// its duration and result.
func NewLogging(svc monitor.Service, logger *slog.Logger) monitor.Service {
	return &loggingMiddleware{logger, svc}
}

func (lm *loggingMiddleware) RunCycle(ctx context.Context) (snap monitor.Snapshot, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Uint64("version", snap.Version),
		}
		if err != nil {
			args = append(args, slog.String("error", err.Error()))
			lm.logger.Warn("Run cycle failed", args...)
			return
		}
		lm.logger.Info("Run cycle completed successfully", args...)
	}(time.Now())
	return lm.svc.RunCycle(ctx)
}

func (lm *loggingMiddleware) ViewSnapshot(ctx context.Context) monitor.Snapshot {
	defer func(begin time.Time) {
		lm.logger.Info("View snapshot completed successfully",
			slog.String("duration", time.Since(begin).String()))
	}(time.Now())
	return lm.svc.ViewSnapshot(ctx)
}

func (lm *loggingMiddleware) ListCerts(ctx context.Context, pm monitor.PageMetadata) (page monitor.CertPage, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("page",
				slog.Uint64("offset", pm.Offset),
				slog.Uint64("limit", pm.Limit),
				slog.Uint64("total", page.Total),
			),
		}
		if err != nil {
			args = append(args, slog.String("error", err.Error()))
			lm.logger.Warn("List certs failed", args...)
			return
		}
		lm.logger.Info("List certs completed successfully", args...)
	}(time.Now())
	return lm.svc.ListCerts(ctx, pm)
}

func (lm *loggingMiddleware) ViewCert(ctx context.Context, certID string) (e monitor.Entry, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("cert_id", certID),
		}
		if err != nil {
			args = append(args, slog.String("error", err.Error()))
			lm.logger.Warn("View cert failed", args...)
			return
		}
		lm.logger.Info("View cert completed successfully", args...)
	}(time.Now())
	return lm.svc.ViewCert(ctx, certID)
}

func (lm *loggingMiddleware) RenewCert(ctx context.Context, certID string) (o monitor.Outcome, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("cert_id", certID),
			slog.String("result", o.Result.String()),
		}
		if err != nil {
			args = append(args, slog.String("error", err.Error()))
			lm.logger.Warn("Renew cert failed", args...)
			return
		}
		lm.logger.Info("Renew cert completed successfully", args...)
	}(time.Now())
	return lm.svc.RenewCert(ctx, certID)
}

func (lm *loggingMiddleware) RevokeCert(ctx context.Context, certID string) (t time.Time, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("cert_id", certID),
		}
		if err != nil {
			args = append(args, slog.String("error", err.Error()))
			lm.logger.Warn("Revoke cert failed", args...)
			return
		}
		lm.logger.Info("Revoke cert completed successfully", args...)
	}(time.Now())
	return lm.svc.RevokeCert(ctx, certID)
}

func (lm *loggingMiddleware) Outcomes(ctx context.Context) []monitor.Outcome {
	defer func(begin time.Time) {
		lm.logger.Info("List outcomes completed successfully",
			slog.String("duration", time.Since(begin).String()))
	}(time.Now())
	return lm.svc.Outcomes(ctx)
}
