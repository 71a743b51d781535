// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"fmt"

	"github.com/MKhiriev/go-compositor/models"
)

var (
	ErrAlreadyRunning = fmt.Errorf("%w: composition loop already running", models.ErrInvalidArgument)
	ErrNilComponent   = fmt.Errorf("%w: compositor component is nil", models.ErrInvalidArgument)
)
