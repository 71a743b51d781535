// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// CompositionMode is the per-frame decision of the composition engine.
type CompositionMode uint8

const (
	// CompositionUniform renders every surface into one GPU buffer.
	CompositionUniform CompositionMode = iota
	// CompositionOffline hands each surface to its own hardware layer.
	CompositionOffline
	// CompositionRedraw re-renders the whole screen from scratch.
	CompositionRedraw
)

func (m CompositionMode) String() string {
	switch m {
	case CompositionUniform:
		return "uniform"
	case CompositionOffline:
		return "offline"
	case CompositionRedraw:
		return "redraw"
	}
	return "unknown"
}

// MarshalText renders the mode by name in JSON payloads.
func (m CompositionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a name written by MarshalText.
func (m *CompositionMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "uniform":
		*m = CompositionUniform
	case "offline":
		*m = CompositionOffline
	case "redraw":
		*m = CompositionRedraw
	default:
		return fmt.Errorf("%w: unknown composition mode %q", ErrInvalidArgument, text)
	}
	return nil
}

// SurfacePlan is one surface as it should be presented this frame.
type SurfacePlan struct {
	SurfaceID   SurfaceID    `json:"surface_id"`
	Rect        Rect         `json:"rect"`
	ZOrder      int32        `json:"z_order"`
	Transform   Transform    `json:"transform"`
	Buffer      BufferHandle `json:"buffer"`
	Dirty       []Rect       `json:"dirty,omitempty"`
	ForceRedraw bool         `json:"force_redraw,omitempty"`
}

// FramePlan is what the engine hands to the hardware backend for one screen.
// Surfaces are sorted by ascending z-order.
type FramePlan struct {
	ScreenID    ScreenID        `json:"screen_id"`
	FrameNumber uint64          `json:"frame_number"`
	Mode        CompositionMode `json:"mode"`
	Surfaces    []SurfacePlan   `json:"surfaces"`
}
