// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

var (
	// ErrIssue indicates the issuing backend rejected or failed a request.
	ErrIssue = errors.New("issuing backend request failed")

	// ErrCommonNameMismatch indicates the issued certificate does not carry
	// the expected common name. Protects against misconfigured roles.
	ErrCommonNameMismatch = errors.New("issued certificate common name mismatch")

	// ErrWriteArtifact indicates the renewed material could not be
	// persisted. The previous artifact is left untouched.
	ErrWriteArtifact = errors.New("failed to write renewed artifact")
)

// Result is the terminal state of one renewal attempt.
type Result uint8

const (
	// Succeeded means a new artifact was issued and persisted.
	Succeeded Result = iota
	// Failed means the attempt failed; the old artifact is untouched and
	// the next cycle retries.
	Failed
	// Skipped means renewal was not required for this entry.
	Skipped
	// InProgress means another renewal for the same identity holds the
	// lease; this attempt stepped aside.
	InProgress
)

func (r Result) String() string {
	switch r {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	case InProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

func (r Result) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for _, v := range []Result{Succeeded, Failed, Skipped, InProgress} {
		if v.String() == str {
			*r = v
			return nil
		}
	}
	return errors.New("unknown renewal result " + str)
}

// Outcome describes one renewal attempt for a certificate identity.
type Outcome struct {
	Path        string    `json:"path"`
	Role        string    `json:"role,omitempty"`
	Serial      string    `json:"serial_number,omitempty"`
	Result      Result    `json:"result"`
	NewSerial   string    `json:"new_serial_number,omitempty"`
	NewNotAfter time.Time `json:"new_not_after,omitzero"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
}

// identityState is the per-identity renewal record: an exclusive lease plus
// the last observed outcome. Guarded by the coordinator mutex; the lease is
// released on every exit path, including cancellation.
type identityState struct {
	renewing      bool
	renewedSerial string
	last          Outcome
}

// CoordinatorConfig tunes the renewal coordinator.
type CoordinatorConfig struct {
	// RenewAt is the least severe tier that triggers renewal.
	RenewAt Status
	// DefaultRole used when a location configures none.
	DefaultRole string
	// DefaultTTL requested when a location configures none.
	DefaultTTL string
	// IssueTimeout bounds one call to the issuing backend.
	IssueTimeout time.Duration
	// HistorySize caps the retained outcome history.
	HistorySize int
}

// Coordinator decides when a classified certificate is renewed and performs
// the renewal: issue through the Agent, validate, persist atomically. A
// given identity is never renewed twice concurrently.
type Coordinator struct {
	agent  Agent
	cfg    CoordinatorConfig
	logger *slog.Logger

	mu      sync.Mutex
	states  map[string]*identityState
	history []Outcome
}

// NewCoordinator returns a renewal coordinator using agent as the issuing
// backend.
func NewCoordinator(agent Agent, cfg CoordinatorConfig, logger *slog.Logger) *Coordinator {
	if cfg.IssueTimeout <= 0 {
		cfg.IssueTimeout = 30 * time.Second
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 100
	}
	if cfg.DefaultTTL == "" {
		cfg.DefaultTTL = "720h"
	}

	return &Coordinator{
		agent:  agent,
		cfg:    cfg,
		logger: logger,
		states: make(map[string]*identityState),
	}
}

// Due reports whether the entry's tier triggers renewal.
func (c *Coordinator) Due(e Entry) bool {
	return e.Status >= c.cfg.RenewAt
}

// MaybeRenew renews the entry if its tier is due. Entries below the trigger
// tier are Skipped without touching the issuing backend.
func (c *Coordinator) MaybeRenew(ctx context.Context, e Entry) Outcome {
	if !c.Due(e) {
		return c.record(Outcome{
			Path:   e.Record.Path,
			Role:   e.Location.Role,
			Serial: e.Record.SerialNumber,
			Result: Skipped,
			At:     time.Now().UTC(),
		}, false)
	}

	return c.Renew(ctx, e)
}

// Renew performs a renewal for the entry regardless of tier, still honoring
// the per-identity lease and cycle idempotence.
func (c *Coordinator) Renew(ctx context.Context, e Entry) Outcome {
	path := e.Record.Path
	outcome := Outcome{
		Path:   path,
		Role:   e.Location.Role,
		Serial: e.Record.SerialNumber,
		At:     time.Now().UTC(),
	}

	c.mu.Lock()
	st, ok := c.states[path]
	if !ok {
		st = &identityState{}
		c.states[path] = st
	}
	if st.renewing {
		c.mu.Unlock()
		outcome.Result = InProgress
		return c.record(outcome, false)
	}
	if st.renewedSerial == e.Record.SerialNumber {
		// This serial was already replaced; the artifact on disk will show
		// the new serial on the next scan.
		c.mu.Unlock()
		outcome.Result = Skipped
		return c.record(outcome, true)
	}
	st.renewing = true
	c.mu.Unlock()

	// Released in a defer so a panic below cannot leave the identity stuck
	// holding its lease. Until c.renew returns the outcome reads as Failed.
	outcome.Result = Failed
	defer func() {
		c.mu.Lock()
		st.renewing = false
		if outcome.Result == Succeeded {
			st.renewedSerial = e.Record.SerialNumber
		}
		st.last = outcome
		c.mu.Unlock()
	}()

	outcome = c.renew(ctx, e, outcome)

	return c.record(outcome, true)
}

func (c *Coordinator) renew(ctx context.Context, e Entry, outcome Outcome) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.IssueTimeout)
	defer cancel()

	role := e.Location.Role
	if role == "" {
		role = c.cfg.DefaultRole
	}
	ttl := e.Location.TTL
	if ttl == "" {
		ttl = c.cfg.DefaultTTL
	}
	commonName := e.Location.CommonName
	if commonName == "" {
		commonName = e.Record.CommonName
	}

	cert, err := c.agent.Issue(ctx, role, commonName, ttl, nil)
	if err != nil {
		return failed(outcome, errors.Wrap(ErrIssue, err))
	}

	issued, err := ParseRecord(e.Record.Path, []byte(cert.Certificate))
	if err != nil {
		return failed(outcome, errors.Wrap(ErrIssue, err))
	}
	if issued.CommonName != commonName {
		return failed(outcome, errors.Wrap(ErrCommonNameMismatch, errors.New(issued.CommonName)))
	}

	if err := c.persist(e, cert); err != nil {
		return failed(outcome, errors.Wrap(ErrWriteArtifact, err))
	}

	outcome.Result = Succeeded
	outcome.NewSerial = issued.SerialNumber
	outcome.NewNotAfter = issued.NotAfter

	return outcome
}

// persist writes the renewed certificate, then the private key, each with a
// write-temp-then-rename so a reader never observes a partial artifact.
func (c *Coordinator) persist(e Entry, cert Cert) error {
	bundle := strings.TrimSpace(cert.Certificate) + "\n"
	for _, ca := range cert.CAChain {
		bundle += strings.TrimSpace(ca) + "\n"
	}

	if err := writeFileAtomic(e.Record.Path, []byte(bundle), 0o644); err != nil {
		return err
	}

	if cert.Key != "" {
		keyPath := e.Location.KeyPath
		if keyPath == "" {
			keyPath = deriveKeyPath(e.Record.Path)
		}
		if err := writeFileAtomic(keyPath, []byte(strings.TrimSpace(cert.Key)+"\n"), 0o600); err != nil {
			return err
		}
	}

	return nil
}

// record appends the outcome to the bounded history. Skipped outcomes for
// entries that were never due are not worth keeping.
func (c *Coordinator) record(o Outcome, keep bool) Outcome {
	if !keep {
		return o
	}

	c.mu.Lock()
	c.history = append(c.history, o)
	if len(c.history) > c.cfg.HistorySize {
		c.history = c.history[len(c.history)-c.cfg.HistorySize:]
	}
	c.mu.Unlock()

	return o
}

// History returns a copy of the retained outcomes, most recent last.
func (c *Coordinator) History() []Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Outcome, len(c.history))
	copy(out, c.history)
	return out
}

func failed(o Outcome, err error) Outcome {
	o.Result = Failed
	o.Error = err.Error()
	return o
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".renew-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func deriveKeyPath(certPath string) string {
	ext := filepath.Ext(certPath)
	return strings.TrimSuffix(certPath, ext) + ".key"
}
