// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vsync

import (
	"fmt"

	"github.com/MKhiriev/go-compositor/models"
)

var (
	ErrConnectionTableFull = fmt.Errorf("%w: vsync connection table is full", models.ErrResourceExhausted)
	ErrConnectionNotFound  = fmt.Errorf("%w: vsync connection not found", models.ErrStaleState)
	ErrInvalidRate         = fmt.Errorf("%w: vsync rate must be at least 1", models.ErrInvalidArgument)
	ErrInvalidRefreshRate  = fmt.Errorf("%w: refresh rate out of range", models.ErrInvalidArgument)
	ErrEmptyName           = fmt.Errorf("%w: connection name is empty", models.ErrInvalidArgument)
)
