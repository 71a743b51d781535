// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

// Checkpointer persists the DFX counters and resets them.
type Checkpointer interface {
	Checkpoint(ctx context.Context) (models.DFXCheckpoint, error)
}

type checkpointJob struct {
	dfx      Checkpointer
	interval time.Duration
	logger   *logger.Logger
}

// NewCheckpointJob returns nil when interval is not positive, which
// NewWorkers treats as "disabled".
func NewCheckpointJob(dfx Checkpointer, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		return nil
	}
	return &checkpointJob{
		dfx:      dfx,
		interval: interval,
		logger:   log.Component("checkpoint-job"),
	}
}

// Run takes a checkpoint every interval. A failed checkpoint is logged and
// retried on the next tick.
func (j *checkpointJob) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info().Dur("interval", j.interval).Msg("checkpoint job started")
	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("checkpoint job stopped")
			return nil
		case <-ticker.C:
			j.tick(ctx)
		}
	}
}

func (j *checkpointJob) tick(ctx context.Context) {
	cp, err := j.dfx.Checkpoint(ctx)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Err(err).Msg("checkpoint failed")
		}
		return
	}
	j.logger.Debug().
		Int64("checkpoint_id", cp.ID).
		Int64("frames", cp.Synthesis.TotalFrames).
		Msg("dfx checkpoint saved")
}
