// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-compositor/models"

// snapshotMsg carries one poll of the server. Parts that failed keep their
// zero value; err joins every failure.
type snapshotMsg struct {
	screens   []models.ScreenInfo
	vsync     models.VSyncStatus
	synthesis models.LayerSynthesisModeInfo
	dirty     []models.GpuDirtyRegionInfo
	err       error
}

type refreshTickMsg struct{}

type vsyncEventMsg struct {
	event models.VSyncEvent
	// closed is set when the event stream ended.
	closed bool
}

type screenCreatedMsg struct {
	id  models.ScreenID
	err error
}

type screenRemovedMsg struct {
	id  models.ScreenID
	err error
}

type checkpointMsg struct {
	checkpoint models.DFXCheckpoint
	err        error
}

type copiedMsg struct {
	text string
	err  error
}

type clearStatusMsg struct{}
