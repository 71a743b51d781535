// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/models"
)

// TransactionValidationService rejects calls from callers without the
// transactions capability and transactions that could never be applied
// before they reach the synchronizer.
type TransactionValidationService struct {
	inner   TransactionService
	metrics *metrics.Metrics
}

func NewTransactionValidationService(m *metrics.Metrics) TransactionServiceWrapper {
	return &TransactionValidationService{metrics: m}
}

func (v *TransactionValidationService) Submit(ctx context.Context, caller models.Caller, txn models.Transaction) (models.TransactionAccepted, error) {
	log := logger.FromContext(ctx)

	if err := v.authorize(caller); err != nil {
		log.Warn().Int32("pid", caller.Pid).Msg("transaction submitted without capability")
		v.metrics.IncTransactions("rejected")
		return models.TransactionAccepted{}, err
	}

	// the pid in the body may be omitted, but never point at another process
	if txn.Pid != 0 && txn.Pid != caller.Pid {
		log.Warn().Int32("pid", caller.Pid).Int32("txn_pid", txn.Pid).Msg("transaction pid mismatch")
		v.metrics.IncTransactions("rejected")
		return models.TransactionAccepted{}, fmt.Errorf("%w: %w", ErrPermissionDenied, transaction.ErrPidMismatch)
	}

	if err := transaction.Validate(txn); err != nil {
		log.Err(err).Int32("pid", caller.Pid).Uint64("version", txn.Version).Msg("invalid transaction")
		v.metrics.IncTransactions("rejected")
		return models.TransactionAccepted{}, fmt.Errorf("error during transaction validation: %w", err)
	}

	return v.inner.Submit(ctx, caller, txn)
}

func (v *TransactionValidationService) OpenSync(ctx context.Context, caller models.Caller, req models.SyncTransactionRequest) error {
	if err := v.authorize(caller); err != nil {
		return err
	}
	if req.SyncID == 0 || len(req.Participants) == 0 {
		return ErrInvalidDataProvided
	}
	for _, pid := range req.Participants {
		if pid <= 0 {
			return fmt.Errorf("%w: participant pid %d", ErrInvalidDataProvided, pid)
		}
	}

	return v.inner.OpenSync(ctx, caller, req)
}

func (v *TransactionValidationService) CloseSync(ctx context.Context, caller models.Caller, syncID uint64) error {
	if err := v.authorize(caller); err != nil {
		return err
	}
	if syncID == 0 {
		return ErrInvalidDataProvided
	}

	return v.inner.CloseSync(ctx, caller, syncID)
}

func (v *TransactionValidationService) Wrap(wrapped TransactionService) TransactionService {
	v.inner = wrapped
	return v
}

func (v *TransactionValidationService) authorize(caller models.Caller) error {
	if !caller.Has(models.CapTransactions) {
		return ErrPermissionDenied
	}
	return nil
}
