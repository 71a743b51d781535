// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived background loops of the daemon: the
// composition loop, the periodic DFX checkpoint and the config file watcher.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done or the worker
// fails; a clean shutdown returns nil.
type Worker interface {
	Run(ctx context.Context) error
}

// RefreshRateSetter changes the hardware refresh rate at runtime.
type RefreshRateSetter interface {
	SetRefreshRate(refreshRate uint32) error
}
