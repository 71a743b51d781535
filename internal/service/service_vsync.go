// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
)

type vsyncService struct {
	distributor *vsync.Distributor
	stub        *vsync.Stub
	generator   *vsync.Generator

	logger *logger.Logger
}

func NewVSyncService(distributor *vsync.Distributor, stub *vsync.Stub, generator *vsync.Generator, logger *logger.Logger) VSyncService {
	return &vsyncService{
		distributor: distributor,
		stub:        stub,
		generator:   generator,
		logger:      logger,
	}
}

// CreateConnection registers a connection owned by the caller's pid.
func (s *vsyncService) CreateConnection(ctx context.Context, caller models.Caller, name string) (models.ConnectionID, error) {
	log := logger.FromContext(ctx)

	if !caller.Has(models.CapVSync) {
		log.Warn().Int32("pid", caller.Pid).Msg("vsync connection requested without capability")
		return 0, ErrPermissionDenied
	}

	conn, err := s.distributor.CreateConnection(caller.Pid, name)
	if err != nil {
		log.Err(err).Int32("pid", caller.Pid).Str("name", name).Msg("vsync connection was not created")
		return 0, fmt.Errorf("vsync connection was not created: %w", err)
	}

	return conn.ID(), nil
}

func (s *vsyncService) Transact(ctx context.Context, caller models.Caller, req vsync.Request) vsync.Reply {
	return s.stub.Dispatch(ctx, caller, req)
}

// Subscribe checks that the connection exists and belongs to the caller.
func (s *vsyncService) Subscribe(ctx context.Context, caller models.Caller, id models.ConnectionID) (*vsync.Connection, error) {
	conn, ok := s.distributor.Connection(id)
	if !ok {
		return nil, vsync.ErrConnectionNotFound
	}
	if conn.Pid() != caller.Pid {
		logger.FromContext(ctx).Warn().Int32("pid", caller.Pid).Int32("owner", conn.Pid()).
			Uint64("connection_id", uint64(id)).Msg("subscribe to a foreign connection")
		return nil, ErrPermissionDenied
	}

	return conn, nil
}

func (s *vsyncService) RemoveConnection(ctx context.Context, id models.ConnectionID) {
	if s.distributor.RemoveConnection(id) {
		logger.FromContext(ctx).Debug().Uint64("connection_id", uint64(id)).Msg("vsync connection removed")
	}
}

func (s *vsyncService) Status(ctx context.Context) models.VSyncStatus {
	stats := s.generator.Stats()
	return models.VSyncStatus{
		RefreshRate: stats.RefreshRate,
		Period:      stats.Period.Nanoseconds(),
		Ticks:       stats.Ticks,
		Connections: s.distributor.Stats(),
	}
}
