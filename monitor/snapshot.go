// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import "time"

// Entry pairs a parsed certificate record with its classification for one
// scan cycle.
type Entry struct {
	Record        Record   `json:"record"`
	Status        Status   `json:"status"`
	DaysRemaining int      `json:"days_remaining"`
	Location      Location `json:"location"`
}

// Snapshot is the immutable result of one inventory scan. A new snapshot
// replaces the previous one atomically so readers never observe a partially
// updated inventory.
type Snapshot struct {
	Version  uint64         `json:"version"`
	TakenAt  time.Time      `json:"taken_at"`
	Duration time.Duration  `json:"duration"`
	Entries  []Entry        `json:"entries"`
	Failures []ParseFailure `json:"failures,omitempty"`
}

// Lookup finds the entry whose record ID matches id.
func (s Snapshot) Lookup(id string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Record.ID() == id {
			return e, true
		}
	}
	return Entry{}, false
}

// CountByStatus returns the number of entries in the given tier.
func (s Snapshot) CountByStatus(status Status) int {
	n := 0
	for _, e := range s.Entries {
		if e.Status == status {
			n++
		}
	}
	return n
}
