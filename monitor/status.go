// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"encoding/json"
	"time"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

// Status is the discrete health classification of a certificate derived
// from remaining validity.
type Status uint8

const (
	// Healthy indicates daysRemaining >= warningDays.
	Healthy Status = iota
	// Warning indicates criticalDays <= daysRemaining < warningDays.
	Warning
	// Critical indicates 0 <= daysRemaining < criticalDays.
	Critical
	// Expired indicates daysRemaining < 0.
	Expired
)

const secondsPerDay = 86400

// ErrInvalidStatus indicates an unrecognized status name.
var ErrInvalidStatus = errors.New("invalid certificate status")

// AllStatuses lists every tier, in increasing severity.
var AllStatuses = []Status{Healthy, Warning, Critical, Expired}

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// ParseStatus converts a status name to a Status.
func ParseStatus(text string) (Status, error) {
	for _, s := range AllStatuses {
		if s.String() == text {
			return s, nil
		}
	}
	return Healthy, errors.Wrap(ErrInvalidStatus, errors.New(text))
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	val, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = val
	return nil
}

// DaysRemaining returns whole days between now and notAfter, truncated
// toward negative infinity.
func DaysRemaining(notAfter, now time.Time) int {
	sec := notAfter.Unix() - now.Unix()
	days := sec / secondsPerDay
	if sec < 0 && sec%secondsPerDay != 0 {
		days--
	}
	return int(days)
}

// Classify maps remaining validity to a status tier. It is a pure, total
// function: the three live tiers partition [0, inf) without gap or overlap
// (upper boundaries are exclusive) and every past date is Expired.
func Classify(notAfter, now time.Time, warningDays, criticalDays int) Status {
	days := DaysRemaining(notAfter, now)
	switch {
	case days < 0:
		return Expired
	case days < criticalDays:
		return Critical
	case days < warningDays:
		return Warning
	default:
		return Healthy
	}
}
