// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/models"
)

type transactionService struct {
	synchronizer *transaction.Synchronizer
	metrics      *metrics.Metrics

	logger *logger.Logger
}

func NewTransactionService(synchronizer *transaction.Synchronizer, m *metrics.Metrics, logger *logger.Logger) TransactionService {
	return &transactionService{
		synchronizer: synchronizer,
		metrics:      m,
		logger:       logger,
	}
}

// Submit queues txn for the next frame. A stale transaction is not an
// error for the client: it is acknowledged with Dropped set.
func (s *transactionService) Submit(ctx context.Context, caller models.Caller, txn models.Transaction) (models.TransactionAccepted, error) {
	log := logger.FromContext(ctx)

	accepted := models.TransactionAccepted{Pid: caller.Pid, Version: txn.Version}

	err := s.synchronizer.Submit(caller.Pid, txn)
	switch {
	case err == nil:
		s.metrics.IncTransactions("accepted")
		log.Debug().Int32("pid", caller.Pid).Uint64("version", txn.Version).
			Int("commands", len(txn.Commands)).Msg("transaction queued")
		return accepted, nil
	case errors.Is(err, transaction.ErrStaleTransaction):
		s.metrics.IncTransactions("stale")
		accepted.Dropped = true
		return accepted, nil
	default:
		s.metrics.IncTransactions("rejected")
		log.Err(err).Int32("pid", caller.Pid).Uint64("version", txn.Version).Msg("transaction rejected")
		return models.TransactionAccepted{}, fmt.Errorf("transaction rejected: %w", err)
	}
}

func (s *transactionService) OpenSync(ctx context.Context, caller models.Caller, req models.SyncTransactionRequest) error {
	if err := s.synchronizer.OpenSyncTransaction(req.SyncID, req.Participants); err != nil {
		logger.FromContext(ctx).Err(err).Uint64("sync_id", req.SyncID).Msg("sync transaction was not opened")
		return fmt.Errorf("sync transaction was not opened: %w", err)
	}
	return nil
}

func (s *transactionService) CloseSync(ctx context.Context, caller models.Caller, syncID uint64) error {
	if err := s.synchronizer.CloseSyncTransaction(syncID); err != nil {
		logger.FromContext(ctx).Err(err).Uint64("sync_id", syncID).Msg("sync transaction was not closed")
		return fmt.Errorf("sync transaction was not closed: %w", err)
	}
	return nil
}
