// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"context"

	"github.com/MKhiriev/go-compositor/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/device_mock.go -package=mock

// HotplugFunc is called by a device when a screen appears or disappears.
// Devices may call it from any goroutine.
type HotplugFunc func(screenID models.ScreenID, connected bool)

// Device is the hardware composer interface. Errors returned by a device
// should wrap models.ErrHardwareUnavailable when the screen is gone.
type Device interface {
	RegHotPlugCallback(cb HotplugFunc) error
	GetScreenCapability(screenID models.ScreenID) (models.ScreenCapability, error)
	CreateLayer(screenID models.ScreenID, info models.LayerInfo) (models.LayerID, error)
	DestroyLayer(screenID models.ScreenID, layerID models.LayerID) error
	SetLayerInfo(screenID models.ScreenID, layerID models.LayerID, info models.LayerInfo) error
	// GetScreenCompChange returns the layers whose composition type the
	// device changed after validating the layer set.
	GetScreenCompChange(screenID models.ScreenID) (map[models.LayerID]models.CompositionType, error)
	SetScreenClientBuffer(screenID models.ScreenID, buffer models.BufferHandle, damage []models.Rect) error
	Commit(screenID models.ScreenID) (*Fence, error)
}

// Executor runs fn on the goroutine that owns the backend tables.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}
