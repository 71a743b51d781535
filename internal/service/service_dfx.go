// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/composer"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/store"
	"github.com/MKhiriev/go-compositor/models"
)

// DefaultCheckpointLimit is used when a listing asks for no explicit limit.
const DefaultCheckpointLimit = 20

type dfxService struct {
	engine     *composer.Engine
	executor   backend.Executor
	repository store.DFXRepository

	logger *logger.Logger
}

func NewDFXService(engine *composer.Engine, executor backend.Executor, repository store.DFXRepository, logger *logger.Logger) DFXService {
	return &dfxService{
		engine:     engine,
		executor:   executor,
		repository: repository,
		logger:     logger,
	}
}

func (s *dfxService) DirtyRegions(ctx context.Context) []models.GpuDirtyRegionInfo {
	return s.engine.GetAllGpuDirtyRegionInfo()
}

func (s *dfxService) DirtyRegion(ctx context.Context, id models.SurfaceID) models.GpuDirtyRegionInfo {
	return s.engine.GetGpuDirtyRegionInfo(id)
}

func (s *dfxService) Synthesis(ctx context.Context) models.LayerSynthesisModeInfo {
	return s.engine.GetLayerSynthesisModeInfo()
}

// Checkpoint resets the counters between two frames and saves what was
// cleared. The counters stay reset when saving fails; the lost checkpoint is
// logged.
func (s *dfxService) Checkpoint(ctx context.Context) (models.DFXCheckpoint, error) {
	log := logger.FromContext(ctx)

	var cp models.DFXCheckpoint
	if err := s.executor.Do(ctx, func() {
		cp = s.engine.ResetCheckpoint()
	}); err != nil {
		return models.DFXCheckpoint{}, fmt.Errorf("dfx counters were not reset: %w", err)
	}

	id, err := s.repository.SaveCheckpoint(ctx, cp)
	if err != nil {
		log.Err(err).Any("checkpoint", cp).Msg("dfx checkpoint was not saved")
		return models.DFXCheckpoint{}, fmt.Errorf("dfx checkpoint was not saved: %w", err)
	}
	cp.ID = id

	log.Info().Int64("checkpoint_id", id).Int64("total_frames", cp.Synthesis.TotalFrames).
		Int("surfaces", len(cp.DirtyRegions)).Msg("dfx checkpoint saved")
	return cp, nil
}

func (s *dfxService) Checkpoints(ctx context.Context, limit int) ([]models.DFXCheckpoint, error) {
	if limit < 0 {
		return nil, ErrInvalidDataProvided
	}
	if limit == 0 {
		limit = DefaultCheckpointLimit
	}

	checkpoints, err := s.repository.ListCheckpoints(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int("limit", limit).Msg("dfx checkpoints were not listed")
		return nil, fmt.Errorf("dfx checkpoints were not listed: %w", err)
	}

	return checkpoints, nil
}
