// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"fmt"

	"github.com/MKhiriev/go-compositor/models"
)

var (
	ErrNilDevice          = fmt.Errorf("%w: device is nil", models.ErrInvalidArgument)
	ErrNilCallback        = fmt.Errorf("%w: callback is nil", models.ErrInvalidArgument)
	ErrInvalidScreenSize  = fmt.Errorf("%w: screen width and height must be positive", models.ErrInvalidArgument)
	ErrScreenExists       = fmt.Errorf("%w: screen id already in use", models.ErrInvalidArgument)
	ErrNotVirtualScreen   = fmt.Errorf("%w: screen is not virtual", models.ErrInvalidArgument)
	ErrScreenNotFound     = fmt.Errorf("%w: screen not found", models.ErrHardwareUnavailable)
	ErrScreenDisconnected = fmt.Errorf("%w: screen is disconnected", models.ErrHardwareUnavailable)
	ErrDeviceAPIFailed    = fmt.Errorf("%w: device call failed", models.ErrHardwareUnavailable)
	ErrEventQueueFull     = fmt.Errorf("%w: hotplug event queue is full", models.ErrResourceExhausted)
	ErrExecutorStopped    = fmt.Errorf("%w: composition loop stopped", models.ErrHardwareUnavailable)
)
