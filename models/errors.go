// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// Error kinds shared by every component. Package level sentinels wrap one of
// these (fmt.Errorf("%w: ...", kind)) so transports can classify any error
// with [errors.Is] without knowing the package that produced it.
var (
	// ErrInvalidArgument marks malformed input: bad geometry, nil callbacks,
	// rates below one, unknown command types.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStaleState marks requests that refer to something which no longer
	// matches the current state: an outdated transaction version, a removed
	// connection, an unknown surface or barrier.
	ErrStaleState = errors.New("stale state")

	// ErrResourceExhausted marks a full connection table or event queue.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrRemotePeerLost marks work that was abandoned because the owning
	// client process died.
	ErrRemotePeerLost = errors.New("remote peer lost")

	// ErrHardwareUnavailable marks device failures: a screen was detached or
	// the driver call failed.
	ErrHardwareUnavailable = errors.New("hardware unavailable")

	// ErrInvariantViolation marks internal bookkeeping inconsistencies.
	ErrInvariantViolation = errors.New("invariant violation")
)
