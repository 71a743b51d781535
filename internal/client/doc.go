// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the operator client runtime.
//
// It obtains a capability token, opens a VSync connection of its own so the
// monitor shows live ticks, and runs the terminal monitor until the user
// quits.
package client
