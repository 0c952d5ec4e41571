// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/server"
)

const stopWaitTime = 5 * time.Second

// Scheduler drives the monitoring service on a fixed interval. It satisfies
// the server contract so signal handling stops it alongside the listeners.
type Scheduler struct {
	svc      Service
	interval time.Duration
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	quit     chan struct{}
	done     chan struct{}
}

var _ server.Server = (*Scheduler)(nil)

// NewScheduler returns a cycle scheduler. The first cycle runs immediately
// on Start, subsequent cycles every interval.
func NewScheduler(ctx context.Context, cancel context.CancelFunc, svc Service, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Scheduler{
		svc:      svc,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() error {
	defer close(s.done)
	s.logger.Info("scheduler started", slog.Duration("interval", s.interval))

	s.cycle()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cycle()
		case <-s.quit:
			return nil
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}
}

func (s *Scheduler) Stop() error {
	defer s.cancel()
	close(s.quit)

	select {
	case <-s.done:
	case <-time.After(stopWaitTime):
		s.logger.Error(fmt.Sprintf("scheduler did not stop within %s", stopWaitTime))
	}
	s.logger.Info("scheduler stopped")

	return nil
}

func (s *Scheduler) cycle() {
	started := time.Now()
	snap, err := s.svc.RunCycle(s.ctx)
	if err != nil {
		s.logger.Error("cycle failed", slog.String("error", err.Error()))
		return
	}

	s.logger.Info("cycle complete",
		slog.Uint64("version", snap.Version),
		slog.Int("certs", len(snap.Entries)),
		slog.Int("failures", len(snap.Failures)),
		slog.Int("expired", snap.CountByStatus(Expired)),
		slog.Int("critical", snap.CountByStatus(Critical)),
		slog.Int("warning", snap.CountByStatus(Warning)),
		slog.Duration("took", time.Since(started)),
	)
}
