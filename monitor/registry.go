// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricNamespace = "pki_monitor"

// Registry is the in-memory, thread-safe view of inventory state and
// cumulative renewal counters, rendered on demand in Prometheus exposition
// format. It collects from an immutable snapshot under a read lock, so
// rendering concurrently with Update never yields a torn read.
type Registry struct {
	reg *prometheus.Registry

	mu        sync.RWMutex
	snap      Snapshot
	backendUp bool
	renewals  map[Result]map[string]uint64

	daysRemaining *prometheus.Desc
	certStatus    *prometheus.Desc
	unreadable    *prometheus.Desc
	scanDuration  *prometheus.Desc
	scanArtifacts *prometheus.Desc
	scanFailures  *prometheus.Desc
	backendGauge  *prometheus.Desc
	renewalsTotal *prometheus.Desc
}

var _ prometheus.Collector = (*Registry)(nil)

// NewRegistry returns a metrics registry with process and Go runtime
// collectors attached.
func NewRegistry() *Registry {
	r := &Registry{
		reg:      prometheus.NewRegistry(),
		renewals: make(map[Result]map[string]uint64),
		daysRemaining: prometheus.NewDesc(
			metricNamespace+"_cert_days_remaining",
			"Whole days until certificate expiry, negative once expired.",
			[]string{"path", "common_name"}, nil,
		),
		certStatus: prometheus.NewDesc(
			metricNamespace+"_cert_status",
			"Certificate status tier as boolean gauges, one per tier.",
			[]string{"path", "tier"}, nil,
		),
		unreadable: prometheus.NewDesc(
			metricNamespace+"_cert_unreadable",
			"Locations whose artifact could not be read or parsed this cycle.",
			[]string{"path", "kind"}, nil,
		),
		scanDuration: prometheus.NewDesc(
			metricNamespace+"_scan_duration_seconds",
			"Duration of the last inventory scan.",
			nil, nil,
		),
		scanArtifacts: prometheus.NewDesc(
			metricNamespace+"_scan_artifacts",
			"Number of certificates discovered by the last scan.",
			nil, nil,
		),
		scanFailures: prometheus.NewDesc(
			metricNamespace+"_scan_failures",
			"Number of unreadable or malformed artifacts in the last scan.",
			nil, nil,
		),
		backendGauge: prometheus.NewDesc(
			metricNamespace+"_backend_up",
			"Whether the issuing backend was reachable on the last probe.",
			nil, nil,
		),
		renewalsTotal: prometheus.NewDesc(
			metricNamespace+"_renewals_total",
			"Cumulative renewal outcomes since process start.",
			[]string{"result", "role"}, nil,
		),
	}

	r.reg.MustRegister(r)
	r.reg.MustRegister(collectors.NewGoCollector())
	r.reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return r
}

// Update replaces the inventory view with a new snapshot. Identities absent
// from the snapshot disappear from the exposition.
func (r *Registry) Update(snap Snapshot) {
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
}

// RecordOutcome folds one renewal outcome into the lifetime counters.
// Counters are monotonic and never reset while the process lives.
func (r *Registry) RecordOutcome(o Outcome) {
	role := o.Role
	if role == "" {
		role = "default"
	}

	r.mu.Lock()
	byRole, ok := r.renewals[o.Result]
	if !ok {
		byRole = make(map[string]uint64)
		r.renewals[o.Result] = byRole
	}
	byRole[role]++
	r.mu.Unlock()
}

// SetBackendUp records issuing backend reachability, refreshed once per
// cycle.
func (r *Registry) SetBackendUp(up bool) {
	r.mu.Lock()
	r.backendUp = up
	r.mu.Unlock()
}

// Handler renders the registry in Prometheus text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Registry) Describe(ch chan<- *prometheus.Desc) {
	ch <- r.daysRemaining
	ch <- r.certStatus
	ch <- r.unreadable
	ch <- r.scanDuration
	ch <- r.scanArtifacts
	ch <- r.scanFailures
	ch <- r.backendGauge
	ch <- r.renewalsTotal
}

func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.snap.Entries {
		ch <- prometheus.MustNewConstMetric(r.daysRemaining, prometheus.GaugeValue,
			float64(e.DaysRemaining), e.Record.Path, e.Record.CommonName)
		for _, tier := range AllStatuses {
			v := 0.0
			if e.Status == tier {
				v = 1.0
			}
			ch <- prometheus.MustNewConstMetric(r.certStatus, prometheus.GaugeValue,
				v, e.Record.Path, tier.String())
		}
	}

	for _, f := range r.snap.Failures {
		ch <- prometheus.MustNewConstMetric(r.unreadable, prometheus.GaugeValue, 1, f.Path, f.Kind)
	}

	ch <- prometheus.MustNewConstMetric(r.scanDuration, prometheus.GaugeValue, r.snap.Duration.Seconds())
	ch <- prometheus.MustNewConstMetric(r.scanArtifacts, prometheus.GaugeValue, float64(len(r.snap.Entries)))
	ch <- prometheus.MustNewConstMetric(r.scanFailures, prometheus.GaugeValue, float64(len(r.snap.Failures)))

	up := 0.0
	if r.backendUp {
		up = 1.0
	}
	ch <- prometheus.MustNewConstMetric(r.backendGauge, prometheus.GaugeValue, up)

	for result, byRole := range r.renewals {
		for role, count := range byRole {
			ch <- prometheus.MustNewConstMetric(r.renewalsTotal, prometheus.CounterValue,
				float64(count), result.String(), role)
		}
	}
}
