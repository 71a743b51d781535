// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transaction implements the transaction synchronizer: per-process
// FIFO queues of scene transactions, version-based stale detection and
// synchronization barriers that make multi-process updates land in the same
// frame.
package transaction

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

// Synchronizer buffers transactions between client submission and the next
// frame. Submit and the barrier operations run on transport goroutines;
// DrainForFrame runs on the composition goroutine.
type Synchronizer struct {
	mu          sync.Mutex
	queues      map[int32][]models.Transaction
	lastVersion map[int32]uint64
	barriers    map[uint64]*barrier

	syncTimeout time.Duration
	queueLimit  int
	now         func() time.Time

	logger *logger.Logger
}

// NewSynchronizer returns an empty synchronizer. syncTimeout bounds how long
// a barrier may hold transactions; queueLimit bounds each process queue.
func NewSynchronizer(syncTimeout time.Duration, queueLimit int, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		queues:      make(map[int32][]models.Transaction),
		lastVersion: make(map[int32]uint64),
		barriers:    make(map[uint64]*barrier),
		syncTimeout: syncTimeout,
		queueLimit:  queueLimit,
		now:         time.Now,
		logger:      log.Component("transaction-synchronizer"),
	}
}

// Submit enqueues txn for pid. The transaction is copied, so the caller may
// reuse its slices. A transaction whose version is not newer than the last
// one accepted from pid is dropped and ErrStaleTransaction is returned.
func (s *Synchronizer) Submit(pid int32, txn models.Transaction) error {
	if txn.Pid != 0 && txn.Pid != pid {
		return ErrPidMismatch
	}
	txn = txn.Clone()
	txn.Pid = pid

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.lastVersion[pid]; ok && txn.Version <= last {
		s.logger.Warn().Int32("pid", pid).Uint64("version", txn.Version).Uint64("last_version", last).
			Msg("stale transaction dropped")
		return ErrStaleTransaction
	}

	if len(s.queues[pid]) >= s.queueLimit {
		s.logger.Warn().Int32("pid", pid).Int("limit", s.queueLimit).Msg("transaction queue full")
		return ErrQueueFull
	}

	if txn.SyncID != 0 {
		s.markArrived(pid, txn.SyncID)
	}

	s.queues[pid] = append(s.queues[pid], txn)
	s.lastVersion[pid] = txn.Version

	return nil
}

func (s *Synchronizer) markArrived(pid int32, syncID uint64) {
	b, ok := s.barriers[syncID]
	if !ok {
		s.logger.Debug().Int32("pid", pid).Uint64("sync_id", syncID).
			Msg("sync id without open barrier, applying as a plain transaction")
		return
	}
	if !b.participates(pid) {
		s.logger.Warn().Int32("pid", pid).Uint64("sync_id", syncID).
			Msg("process is not a participant of the sync transaction")
		return
	}

	b.arrived[pid] = struct{}{}
	if b.closing && b.complete() {
		s.resolve(b, false)
	}
}

// OpenSyncTransaction starts a barrier for participants. Their transactions
// tagged with syncID are held until the barrier resolves.
func (s *Synchronizer) OpenSyncTransaction(syncID uint64, participants []int32) error {
	if syncID == 0 {
		return ErrInvalidSyncID
	}
	if len(participants) == 0 {
		return ErrNoParticipants
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.barriers[syncID]; ok {
		return ErrBarrierExists
	}

	s.barriers[syncID] = newBarrier(syncID, participants, s.now().Add(s.syncTimeout))
	s.logger.Debug().Uint64("sync_id", syncID).Ints32("participants", participants).Msg("sync transaction opened")

	return nil
}

// CloseSyncTransaction declares that no more participants will be added.
// The barrier resolves at once if every participant has arrived, otherwise
// when the last one arrives or the timeout passes. It never blocks.
func (s *Synchronizer) CloseSyncTransaction(syncID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.barriers[syncID]
	if !ok {
		return ErrBarrierNotFound
	}

	b.closing = true
	if b.complete() {
		s.resolve(b, false)
	}

	return nil
}

// resolve releases everything b holds. Held transactions stay queued and are
// returned together by the next DrainForFrame.
func (s *Synchronizer) resolve(b *barrier, timedOut bool) {
	delete(s.barriers, b.syncID)

	if timedOut {
		s.logger.Warn().Uint64("sync_id", b.syncID).Ints32("missing", b.missing()).
			Msg("sync transaction timed out, applying partial update")
		return
	}
	s.logger.Debug().Uint64("sync_id", b.syncID).Msg("sync transaction resolved")
}

func (s *Synchronizer) held(txn models.Transaction) bool {
	if txn.SyncID == 0 {
		return false
	}
	b, ok := s.barriers[txn.SyncID]
	return ok && b.participates(txn.Pid)
}

// DrainForFrame returns the commands to apply in the frame starting at now.
// Barriers that are due are resolved first. Commands come out ordered by
// pid, then by version; a pid's queue stops at its first transaction that
// is still held by a barrier.
func (s *Synchronizer) DrainForFrame(now time.Time) []models.Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.barriers {
		if b.closing && b.complete() {
			s.resolve(b, false)
			continue
		}
		if !now.Before(b.deadline) {
			s.resolve(b, true)
		}
	}

	var cmds []models.Command
	for _, pid := range slices.Sorted(maps.Keys(s.queues)) {
		queue := s.queues[pid]

		n := 0
		for n < len(queue) && !s.held(queue[n]) {
			for _, cmd := range queue[n].Commands {
				cmd.Pid = pid
				cmd.Version = queue[n].Version
				cmds = append(cmds, cmd)
			}
			n++
		}

		if n == len(queue) {
			delete(s.queues, pid)
		} else {
			s.queues[pid] = slices.Delete(queue, 0, n)
		}
	}

	return cmds
}

// OnPeerLost discards pid's unapplied transactions, forgets its version
// history and removes it from every open barrier.
func (s *Synchronizer) OnPeerLost(pid int32) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	discarded := len(s.queues[pid])
	delete(s.queues, pid)
	delete(s.lastVersion, pid)

	for _, b := range s.barriers {
		if !b.participates(pid) {
			continue
		}
		b.forget(pid)
		if len(b.expected) == 0 || (b.closing && b.complete()) {
			s.resolve(b, false)
		}
	}

	if discarded > 0 {
		s.logger.Info().Int32("pid", pid).Int("discarded", discarded).Msg("peer lost, transactions discarded")
	}

	return discarded
}

// Pending returns the number of queued transactions per pid.
func (s *Synchronizer) Pending() map[int32]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make(map[int32]int, len(s.queues))
	for pid, queue := range s.queues {
		pending[pid] = len(queue)
	}
	return pending
}

// OpenBarriers returns the number of unresolved sync transactions.
func (s *Synchronizer) OpenBarriers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.barriers)
}
