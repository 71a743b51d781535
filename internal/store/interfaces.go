// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-compositor/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DFXRepository stores DFX checkpoints.
type DFXRepository interface {
	// SaveCheckpoint persists cp with its dirty regions and returns the
	// assigned id.
	SaveCheckpoint(ctx context.Context, cp models.DFXCheckpoint) (int64, error)
	// ListCheckpoints returns up to limit checkpoints, newest first.
	ListCheckpoints(ctx context.Context, limit int) ([]models.DFXCheckpoint, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
