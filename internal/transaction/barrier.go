// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transaction

import (
	"slices"
	"time"
)

// barrier holds back the transactions of a synchronized update until every
// participant has submitted its part, or until the deadline passes.
type barrier struct {
	syncID   uint64
	expected map[int32]struct{}
	arrived  map[int32]struct{}
	deadline time.Time
	closing  bool
}

func newBarrier(syncID uint64, participants []int32, deadline time.Time) *barrier {
	b := &barrier{
		syncID:   syncID,
		expected: make(map[int32]struct{}, len(participants)),
		arrived:  make(map[int32]struct{}, len(participants)),
		deadline: deadline,
	}
	for _, pid := range participants {
		b.expected[pid] = struct{}{}
	}
	return b
}

func (b *barrier) participates(pid int32) bool {
	_, ok := b.expected[pid]
	return ok
}

func (b *barrier) complete() bool {
	for pid := range b.expected {
		if _, ok := b.arrived[pid]; !ok {
			return false
		}
	}
	return true
}

// missing returns the participants that have not submitted, sorted.
func (b *barrier) missing() []int32 {
	var pids []int32
	for pid := range b.expected {
		if _, ok := b.arrived[pid]; !ok {
			pids = append(pids, pid)
		}
	}
	slices.Sort(pids)
	return pids
}

func (b *barrier) forget(pid int32) {
	delete(b.expected, pid)
	delete(b.arrived, pid)
}
