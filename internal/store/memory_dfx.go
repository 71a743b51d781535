// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-compositor/models"
)

// memoryDFXRepository keeps checkpoints in process memory. It is used when
// no database is configured; checkpoints are lost on restart.
type memoryDFXRepository struct {
	mu          sync.Mutex
	nextID      int64
	checkpoints []models.DFXCheckpoint
}

func NewMemoryDFXRepository() DFXRepository {
	return &memoryDFXRepository{}
}

func (r *memoryDFXRepository) SaveCheckpoint(_ context.Context, cp models.DFXCheckpoint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	cp.ID = r.nextID
	cp.DirtyRegions = slices.Clone(cp.DirtyRegions)
	r.checkpoints = append(r.checkpoints, cp)

	return cp.ID, nil
}

func (r *memoryDFXRepository) ListCheckpoints(_ context.Context, limit int) ([]models.DFXCheckpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.DFXCheckpoint, 0, min(max(limit, 0), len(r.checkpoints)))
	for i := len(r.checkpoints) - 1; i >= 0 && len(out) < limit; i-- {
		cp := r.checkpoints[i]
		cp.DirtyRegions = slices.Clone(cp.DirtyRegions)
		out = append(out, cp)
	}
	return out, nil
}
