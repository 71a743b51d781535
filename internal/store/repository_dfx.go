// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

// dfxRepository is the SQL implementation of [DFXRepository]. A checkpoint
// row lives in dfx_checkpoints, its per-surface statistics in
// dfx_dirty_regions.
type dfxRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewDFXRepository(db *DB, log *logger.Logger) DFXRepository {
	log.Debug().Msg("creating dfx repository")
	return &dfxRepository{db: db, logger: log}
}

// SaveCheckpoint writes the checkpoint and its dirty regions in one
// transaction. A transient PostgreSQL failure is retried once.
func (r *dfxRepository) SaveCheckpoint(ctx context.Context, cp models.DFXCheckpoint) (int64, error) {
	log := logger.FromContext(ctx)

	id, err := r.saveCheckpoint(ctx, cp)
	if err != nil && r.db.retryable(err) {
		log.Warn().Err(err).Str("func", "*dfxRepository.SaveCheckpoint").Msg("retrying after transient error")
		id, err = r.saveCheckpoint(ctx, cp)
	}
	if err != nil {
		log.Err(err).Str("func", "*dfxRepository.SaveCheckpoint").Msg("checkpoint not saved")
		return 0, err
	}

	return id, nil
}

func (r *dfxRepository) saveCheckpoint(ctx context.Context, cp models.DFXCheckpoint) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := r.db.builder().
		Insert(checkpointsTable).
		Columns(checkpointColumns...).
		Values(cp.CreatedAt.UTC(), cp.Synthesis.UniformFrames, cp.Synthesis.OfflineFrames,
			cp.Synthesis.RedrawFrames, cp.Synthesis.TotalFrames).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCheckpointNotSaved
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if len(cp.DirtyRegions) > 0 {
		insert := r.db.builder().Insert(dirtyRegionsTable).Columns(dirtyRegionColumns...)
		for _, d := range cp.DirtyRegions {
			insert = insert.Values(id, int64(d.SurfaceID), d.WindowName, d.ActiveDirtyRegionArea,
				d.GlobalDirtyRegionArea, d.ActiveFramesNumber, d.GlobalFramesNumber, d.SkipProcessFramesNumber)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return id, nil
}

// ListCheckpoints returns up to limit checkpoints, newest first, each with
// its dirty regions ordered by surface id.
func (r *dfxRepository) ListCheckpoints(ctx context.Context, limit int) ([]models.DFXCheckpoint, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		return []models.DFXCheckpoint{}, nil
	}

	query, args, err := r.db.builder().
		Select(append([]string{"id"}, checkpointColumns...)...).
		From(checkpointsTable).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	checkpoints, err := r.selectCheckpoints(ctx, query, args, limit)
	if err != nil {
		log.Err(err).Str("func", "*dfxRepository.ListCheckpoints").Msg("error selecting checkpoints")
		return nil, err
	}

	if len(checkpoints) == 0 {
		return checkpoints, nil
	}

	index := make(map[int64]int, len(checkpoints))
	ids := make([]int64, 0, len(checkpoints))
	for i, cp := range checkpoints {
		index[cp.ID] = i
		ids = append(ids, cp.ID)
	}

	if err := r.loadDirtyRegions(ctx, ids, func(checkpointID int64, info models.GpuDirtyRegionInfo) {
		if i, ok := index[checkpointID]; ok {
			checkpoints[i].DirtyRegions = append(checkpoints[i].DirtyRegions, info)
		}
	}); err != nil {
		log.Err(err).Str("func", "*dfxRepository.ListCheckpoints").Msg("error selecting dirty regions")
		return nil, err
	}

	return checkpoints, nil
}

// selectCheckpoints closes its rows before returning so the connection is
// free for the dirty region query on single-connection SQLite.
func (r *dfxRepository) selectCheckpoints(ctx context.Context, query string, args []any, limit int) ([]models.DFXCheckpoint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	checkpoints := make([]models.DFXCheckpoint, 0, limit)
	for rows.Next() {
		var cp models.DFXCheckpoint
		if err := rows.Scan(&cp.ID, &cp.CreatedAt, &cp.Synthesis.UniformFrames, &cp.Synthesis.OfflineFrames,
			&cp.Synthesis.RedrawFrames, &cp.Synthesis.TotalFrames); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		checkpoints = append(checkpoints, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return checkpoints, nil
}

func (r *dfxRepository) loadDirtyRegions(ctx context.Context, ids []int64, add func(int64, models.GpuDirtyRegionInfo)) error {
	query, args, err := r.db.builder().
		Select(dirtyRegionColumns...).
		From(dirtyRegionsTable).
		Where(sq.Eq{"checkpoint_id": ids}).
		OrderBy("checkpoint_id", "surface_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			checkpointID int64
			surfaceID    int64
			info         models.GpuDirtyRegionInfo
		)
		if err := rows.Scan(&checkpointID, &surfaceID, &info.WindowName, &info.ActiveDirtyRegionArea,
			&info.GlobalDirtyRegionArea, &info.ActiveFramesNumber, &info.GlobalFramesNumber,
			&info.SkipProcessFramesNumber); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		info.SurfaceID = models.SurfaceID(surfaceID)
		withAverages(&info)
		add(checkpointID, info)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return nil
}

// withAverages fills the derived averages, which are not stored.
func withAverages(info *models.GpuDirtyRegionInfo) {
	if info.ActiveFramesNumber > 0 {
		info.ActiveDirtyRegionAreaAverage = info.ActiveDirtyRegionArea / info.ActiveFramesNumber
	}
	if info.GlobalFramesNumber > 0 {
		info.GlobalDirtyRegionAreaAverage = info.GlobalDirtyRegionArea / info.GlobalFramesNumber
	}
}
