// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
)

// Storages groups the repositories handed to the service layer.
type Storages struct {
	DFXRepository DFXRepository

	db *DB
}

// NewStorages connects to the configured database, applies pending
// migrations and builds the repositories. An empty DSN keeps checkpoints in
// memory.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	if cfg.DB.DSN == "" {
		log.Warn().Msg("no database configured, dfx checkpoints are kept in memory")
		return &Storages{DFXRepository: NewMemoryDFXRepository()}, nil
	}

	db, err := Connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		DFXRepository: NewDFXRepository(db, log),
		db:            db,
	}, nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
