// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the transport servers managed by this
// package.
type Server interface {
	// RunServer listens on the configured addresses and serves until ctx is
	// done, then shuts every transport down. It returns the first serve
	// error, or nil after a clean shutdown.
	RunServer(ctx context.Context) error
}
