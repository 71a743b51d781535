// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package composer

import (
	"fmt"

	"github.com/MKhiriev/go-compositor/models"
)

var (
	ErrCounterUnderflow   = fmt.Errorf("%w: offline frame counter would go below zero", models.ErrInvariantViolation)
	ErrInvalidDirtyRegion = fmt.Errorf("%w: dirty region has negative dimensions", models.ErrInvalidArgument)
	ErrUnknownSurface     = fmt.Errorf("%w: surface does not exist", models.ErrStaleState)
	ErrSurfaceExists      = fmt.Errorf("%w: surface already exists", models.ErrInvalidArgument)
	ErrForeignSurface     = fmt.Errorf("%w: surface belongs to another process", models.ErrInvalidArgument)
)
