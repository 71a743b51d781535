// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transaction

import (
	"fmt"

	"github.com/MKhiriev/go-compositor/models"
)

var (
	ErrStaleTransaction  = fmt.Errorf("%w: transaction version is not newer than the last accepted one", models.ErrStaleState)
	ErrPidMismatch       = fmt.Errorf("%w: transaction pid does not match the submitting process", models.ErrInvalidArgument)
	ErrQueueFull         = fmt.Errorf("%w: transaction queue is full", models.ErrResourceExhausted)
	ErrInvalidSyncID     = fmt.Errorf("%w: sync id must be non-zero", models.ErrInvalidArgument)
	ErrNoParticipants    = fmt.Errorf("%w: sync transaction needs participants", models.ErrInvalidArgument)
	ErrBarrierExists     = fmt.Errorf("%w: sync transaction already open", models.ErrInvalidArgument)
	ErrBarrierNotFound   = fmt.Errorf("%w: sync transaction not found", models.ErrStaleState)
	ErrPeerLost          = fmt.Errorf("%w: submitting process is gone", models.ErrRemotePeerLost)
	ErrEmptyTransaction  = fmt.Errorf("%w: transaction has no commands", models.ErrInvalidArgument)
	ErrUnknownCommand    = fmt.Errorf("%w: unknown command type", models.ErrInvalidArgument)
	ErrInvalidDimensions = fmt.Errorf("%w: negative surface dimensions", models.ErrInvalidArgument)
)
