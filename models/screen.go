// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// ScreenID identifies a physical or virtual output.
type ScreenID uint64

// ScreenState is the lifecycle state of an output.
type ScreenState uint8

const (
	ScreenDisconnected ScreenState = iota
	ScreenConnecting
	ScreenActive
	ScreenRepainting
)

func (s ScreenState) String() string {
	switch s {
	case ScreenDisconnected:
		return "disconnected"
	case ScreenConnecting:
		return "connecting"
	case ScreenActive:
		return "active"
	case ScreenRepainting:
		return "repainting"
	}
	return "unknown"
}

// MarshalText renders the state by name in JSON payloads.
func (s ScreenState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a name written by MarshalText.
func (s *ScreenState) UnmarshalText(text []byte) error {
	for _, state := range []ScreenState{ScreenDisconnected, ScreenConnecting, ScreenActive, ScreenRepainting} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("%w: unknown screen state %q", ErrInvalidArgument, text)
}

// ScreenCapability describes what the hardware composer can do for one
// output. LayerCapacity is the number of hardware planes available for
// offline composition.
type ScreenCapability struct {
	ScreenID      ScreenID `json:"screen_id"`
	Name          string   `json:"name"`
	Width         int32    `json:"width"`
	Height        int32    `json:"height"`
	LayerCapacity int      `json:"layer_capacity"`
	RefreshRate   uint32   `json:"refresh_rate"`
}

// ScreenInfo is the externally visible description of an output.
type ScreenInfo struct {
	ScreenID         ScreenID     `json:"screen_id"`
	Name             string       `json:"name"`
	Width            int32        `json:"width"`
	Height           int32        `json:"height"`
	Virtual          bool         `json:"virtual"`
	State            ScreenState  `json:"state"`
	Layers           int          `json:"layers"`
	LayerCapacity    int          `json:"layer_capacity"`
	Producer         BufferHandle `json:"producer,omitempty"`
	CompositionTimes []int64      `json:"composition_times,omitempty"`
}

// VirtualScreenRequest carries the parameters of CreateVirtualScreen.
// A zero ScreenID lets the backend pick the next free id.
type VirtualScreenRequest struct {
	Name     string       `json:"name"`
	Width    int32        `json:"width"`
	Height   int32        `json:"height"`
	Producer BufferHandle `json:"producer"`
	ScreenID ScreenID     `json:"screen_id,omitempty"`
	Flags    uint32       `json:"flags,omitempty"`
}
