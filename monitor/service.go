// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
	svcerr "github.com/sy-cmd/vault-pki-toolkit/pkg/errors/service"
)

// ErrRevoke indicates the issuing backend refused to revoke a certificate.
var ErrRevoke = errors.New("failed to revoke certificate")

// PageMetadata carries paging and filtering parameters for listings.
type PageMetadata struct {
	Total  uint64 `json:"total"`
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
	Status string `json:"status,omitempty"`
	Role   string `json:"role,omitempty"`
}

// CertPage is one page of classified certificates.
type CertPage struct {
	PageMetadata
	Certs []Entry `json:"certs"`
}

// Service exposes the monitoring engine: cycle execution, snapshot reads and
// manual renewal and revocation of individual certificates.
type Service interface {
	// RunCycle performs one scan-classify-renew cycle and returns the
	// resulting snapshot.
	RunCycle(ctx context.Context) (Snapshot, error)

	// ViewSnapshot returns the latest snapshot without scanning.
	ViewSnapshot(ctx context.Context) Snapshot

	// ListCerts returns a filtered page of the latest snapshot.
	ListCerts(ctx context.Context, pm PageMetadata) (CertPage, error)

	// ViewCert returns one classified certificate by its ID.
	ViewCert(ctx context.Context, certID string) (Entry, error)

	// RenewCert renews one certificate regardless of its tier.
	RenewCert(ctx context.Context, certID string) (Outcome, error)

	// RevokeCert revokes one certificate on the issuing backend and returns
	// the revocation time.
	RevokeCert(ctx context.Context, certID string) (time.Time, error)

	// Outcomes returns the retained renewal outcome history.
	Outcomes(ctx context.Context) []Outcome
}

type monitorService struct {
	scanner     *Scanner
	coordinator *Coordinator
	agent       Agent
	registry    *Registry
	workers     int
	logger      *slog.Logger
	snap        atomic.Pointer[Snapshot]
}

var _ Service = (*monitorService)(nil)

// New returns a monitoring service. workers bounds concurrent renewals per
// cycle.
func New(scanner *Scanner, coordinator *Coordinator, agent Agent, registry *Registry, workers int, logger *slog.Logger) Service {
	if workers <= 0 {
		workers = 4
	}

	svc := &monitorService{
		scanner:     scanner,
		coordinator: coordinator,
		agent:       agent,
		registry:    registry,
		workers:     workers,
		logger:      logger,
	}
	svc.snap.Store(&Snapshot{})

	return svc
}

func (svc *monitorService) RunCycle(ctx context.Context) (Snapshot, error) {
	snap := svc.scanner.Scan(ctx)
	svc.snap.Store(&snap)
	svc.registry.Update(snap)

	up := svc.agent.HealthCheck(ctx)
	svc.registry.SetBackendUp(up)
	if !up {
		svc.logger.Warn("issuing backend unreachable, skipping renewals",
			slog.Uint64("version", snap.Version))
		return snap, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(svc.workers)
	for _, e := range snap.Entries {
		if !svc.coordinator.Due(e) {
			continue
		}
		g.Go(func() error {
			outcome := svc.coordinator.MaybeRenew(gctx, e)
			svc.registry.RecordOutcome(outcome)
			if outcome.Result == Failed {
				svc.logger.Warn("renewal failed",
					slog.String("path", outcome.Path),
					slog.String("error", outcome.Error))
			}
			// Failures never abort the cycle; the next scan retries.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return snap, err
	}

	return snap, nil
}

func (svc *monitorService) ViewSnapshot(ctx context.Context) Snapshot {
	return *svc.snap.Load()
}

func (svc *monitorService) ListCerts(ctx context.Context, pm PageMetadata) (CertPage, error) {
	snap := svc.snap.Load()

	var status Status
	filterStatus := pm.Status != ""
	if filterStatus {
		s, err := ParseStatus(pm.Status)
		if err != nil {
			return CertPage{}, errors.Wrap(svcerr.ErrViewEntity, err)
		}
		status = s
	}

	var matched []Entry
	for _, e := range snap.Entries {
		if filterStatus && e.Status != status {
			continue
		}
		if pm.Role != "" && e.Location.Role != pm.Role {
			continue
		}
		matched = append(matched, e)
	}

	page := CertPage{PageMetadata: pm}
	page.Total = uint64(len(matched))

	if pm.Offset >= page.Total {
		return page, nil
	}
	end := pm.Offset + pm.Limit
	if pm.Limit == 0 || end > page.Total {
		end = page.Total
	}
	page.Certs = matched[pm.Offset:end]

	return page, nil
}

func (svc *monitorService) ViewCert(ctx context.Context, certID string) (Entry, error) {
	e, ok := svc.snap.Load().Lookup(certID)
	if !ok {
		return Entry{}, errors.Wrap(svcerr.ErrNotFound, errors.New(certID))
	}
	return e, nil
}

func (svc *monitorService) RenewCert(ctx context.Context, certID string) (Outcome, error) {
	e, ok := svc.snap.Load().Lookup(certID)
	if !ok {
		return Outcome{}, errors.Wrap(svcerr.ErrNotFound, errors.New(certID))
	}

	outcome := svc.coordinator.Renew(ctx, e)
	svc.registry.RecordOutcome(outcome)
	if outcome.Result == Failed {
		return outcome, errors.Wrap(ErrIssue, errors.New(outcome.Error))
	}

	return outcome, nil
}

func (svc *monitorService) RevokeCert(ctx context.Context, certID string) (time.Time, error) {
	e, ok := svc.snap.Load().Lookup(certID)
	if !ok {
		return time.Time{}, errors.Wrap(svcerr.ErrNotFound, errors.New(certID))
	}

	if err := svc.agent.Revoke(ctx, e.Record.SerialNumber); err != nil {
		return time.Time{}, errors.Wrap(ErrRevoke, err)
	}

	return time.Now().UTC(), nil
}

func (svc *monitorService) Outcomes(ctx context.Context) []Outcome {
	return svc.coordinator.History()
}
