// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

// screenService touches the backend only through executor, so output tables
// are never read or written outside the composition goroutine.
type screenService struct {
	backend  *backend.Backend
	executor backend.Executor

	logger *logger.Logger
}

func NewScreenService(b *backend.Backend, executor backend.Executor, logger *logger.Logger) ScreenService {
	return &screenService{
		backend:  b,
		executor: executor,
		logger:   logger,
	}
}

func (s *screenService) CreateVirtualScreen(ctx context.Context, caller models.Caller, req models.VirtualScreenRequest) (models.ScreenID, error) {
	log := logger.FromContext(ctx)

	if !caller.Has(models.CapScreenAdmin) {
		log.Warn().Int32("pid", caller.Pid).Msg("virtual screen creation without capability")
		return 0, ErrPermissionDenied
	}

	var (
		id        models.ScreenID
		createErr error
	)
	if err := s.executor.Do(ctx, func() {
		id, createErr = s.backend.CreateVirtualScreen(req)
	}); err != nil {
		return 0, fmt.Errorf("virtual screen was not created: %w", err)
	}
	if createErr != nil {
		log.Err(createErr).Any("request", req).Msg("virtual screen was not created")
		return 0, fmt.Errorf("virtual screen was not created: %w", createErr)
	}

	log.Info().Uint64("screen_id", uint64(id)).Str("name", req.Name).Msg("virtual screen created")
	return id, nil
}

func (s *screenService) RemoveVirtualScreen(ctx context.Context, caller models.Caller, id models.ScreenID) error {
	if !caller.Has(models.CapScreenAdmin) {
		return ErrPermissionDenied
	}

	var removeErr error
	if err := s.executor.Do(ctx, func() {
		removeErr = s.backend.RemoveVirtualScreen(id)
	}); err != nil {
		return fmt.Errorf("virtual screen was not removed: %w", err)
	}
	if removeErr != nil {
		logger.FromContext(ctx).Err(removeErr).Uint64("screen_id", uint64(id)).Msg("virtual screen was not removed")
		return fmt.Errorf("virtual screen was not removed: %w", removeErr)
	}

	return nil
}

func (s *screenService) ListScreens(ctx context.Context) ([]models.ScreenInfo, error) {
	var screens []models.ScreenInfo
	if err := s.executor.Do(ctx, func() {
		screens = s.backend.Outputs()
	}); err != nil {
		return nil, fmt.Errorf("screens were not listed: %w", err)
	}

	return screens, nil
}
