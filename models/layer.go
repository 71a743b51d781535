// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LayerID identifies a hardware layer on one screen.
type LayerID uint32

// CompositionType tells the device how a layer gets onto the screen.
type CompositionType uint8

const (
	// CompositionClient layers are composed by the GPU into the client
	// (framebuffer) target.
	CompositionClient CompositionType = iota
	// CompositionDevice layers are scanned out by the display hardware.
	CompositionDevice
)

func (c CompositionType) String() string {
	if c == CompositionDevice {
		return "device"
	}
	return "client"
}

// LayerInfo is the device-facing description of a layer.
type LayerInfo struct {
	SurfaceID       SurfaceID       `json:"surface_id"`
	ZOrder          int32           `json:"z_order"`
	Rect            Rect            `json:"rect"`
	Transform       Transform       `json:"transform"`
	Visible         bool            `json:"visible"`
	Buffer          BufferHandle    `json:"buffer"`
	Dirty           []Rect          `json:"dirty,omitempty"`
	CompositionType CompositionType `json:"composition_type"`
}
