// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vsync implements the VSync dispatcher: the timing source that
// produces hardware ticks ([Generator]), the per-client connection table
// that turns ticks into events ([Distributor]) and the IPC stub that maps
// remote operation codes onto the table ([Stub]).
//
// A connection receives exactly one event per request. Events are delivered
// through a one-slot mailbox: a slow client loses older events instead of
// stalling the tick loop.
package vsync
