// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/composer"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
)

type lifecycleService struct {
	distributor  *vsync.Distributor
	synchronizer *transaction.Synchronizer
	engine       *composer.Engine
	executor     backend.Executor

	logger *logger.Logger
}

func NewLifecycleService(distributor *vsync.Distributor, synchronizer *transaction.Synchronizer,
	engine *composer.Engine, executor backend.Executor, logger *logger.Logger) LifecycleService {
	return &lifecycleService{
		distributor:  distributor,
		synchronizer: synchronizer,
		engine:       engine,
		executor:     executor,
		logger:       logger,
	}
}

// PeerLost drops the connections, queued transactions and surfaces of pid.
// A process may report itself; reporting another one needs screen.admin.
func (s *lifecycleService) PeerLost(ctx context.Context, caller models.Caller, pid int32) (models.PeerLostReport, error) {
	log := logger.FromContext(ctx)

	if pid <= 0 {
		return models.PeerLostReport{}, ErrInvalidDataProvided
	}
	if caller.Pid != pid && !caller.Has(models.CapScreenAdmin) {
		log.Warn().Int32("pid", caller.Pid).Int32("lost_pid", pid).Msg("peer lost reported without capability")
		return models.PeerLostReport{}, ErrPermissionDenied
	}

	report := models.PeerLostReport{
		Pid:          pid,
		Connections:  s.distributor.OnPeerLost(pid),
		Transactions: s.synchronizer.OnPeerLost(pid),
	}

	if err := s.executor.Do(ctx, func() {
		report.Surfaces = s.engine.DropClient(pid)
	}); err != nil {
		return report, fmt.Errorf("surfaces of lost peer were not dropped: %w", err)
	}

	log.Info().Any("report", report).Msg("peer lost")
	return report, nil
}
