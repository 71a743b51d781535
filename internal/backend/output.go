// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"cmp"
	"slices"

	"github.com/MKhiriev/go-compositor/models"
)

const compositionTimeHistory = 10

// Layer is a hardware (or, on virtual screens, software) layer bound to one
// surface.
type Layer struct {
	id      models.LayerID
	info    models.LayerInfo
	touched bool
}

func (l *Layer) ID() models.LayerID { return l.id }
func (l *Layer) Info() models.LayerInfo { return l.info }

// Output is one physical or virtual screen. Its state moves
// Disconnected -> Connecting -> Active <-> Repainting, and back to
// Disconnected from any state on detach.
type Output struct {
	screenID    models.ScreenID
	name        string
	width       int32
	height      int32
	capacity    int
	refreshRate uint32
	virtual     bool
	producer    models.BufferHandle
	flags       uint32
	framebuffer models.BufferHandle

	state       models.ScreenState
	layers      map[models.SurfaceID]*Layer
	nextLayerID models.LayerID

	compositionTimes [compositionTimeHistory]int64
	ctNext           int
	ctCount          int
}

func newOutput(screenID models.ScreenID) *Output {
	return &Output{
		screenID:    screenID,
		state:       models.ScreenDisconnected,
		layers:      make(map[models.SurfaceID]*Layer),
		framebuffer: models.BufferHandle(1<<48 | uint64(screenID)),
	}
}

func (o *Output) ScreenID() models.ScreenID { return o.screenID }
func (o *Output) Name() string { return o.name }
func (o *Output) Width() int32 { return o.width }
func (o *Output) Height() int32 { return o.height }
func (o *Output) IsVirtual() bool { return o.virtual }
func (o *Output) State() models.ScreenState { return o.state }
func (o *Output) RefreshRate() uint32 { return o.refreshRate }
func (o *Output) Producer() models.BufferHandle { return o.producer }
func (o *Output) LayerCount() int { return len(o.layers) }

// Capability describes the output to the composition engine.
func (o *Output) Capability() models.ScreenCapability {
	return models.ScreenCapability{
		ScreenID:      o.screenID,
		Name:          o.name,
		Width:         o.width,
		Height:        o.height,
		LayerCapacity: o.capacity,
		RefreshRate:   o.refreshRate,
	}
}

func (o *Output) Info() models.ScreenInfo {
	return models.ScreenInfo{
		ScreenID:         o.screenID,
		Name:             o.name,
		Width:            o.width,
		Height:           o.height,
		Virtual:          o.virtual,
		State:            o.state,
		Layers:           len(o.layers),
		LayerCapacity:    o.capacity,
		Producer:         o.producer,
		CompositionTimes: o.CompositionTimes(),
	}
}

// CompositionTimes returns the recorded present timestamps, oldest first.
func (o *Output) CompositionTimes() []int64 {
	times := make([]int64, 0, o.ctCount)
	start := (o.ctNext - o.ctCount + compositionTimeHistory) % compositionTimeHistory
	for i := 0; i < o.ctCount; i++ {
		times = append(times, o.compositionTimes[(start+i)%compositionTimeHistory])
	}
	return times
}

func (o *Output) recordCompositionTime(ts int64) {
	o.compositionTimes[o.ctNext] = ts
	o.ctNext = (o.ctNext + 1) % compositionTimeHistory
	if o.ctCount < compositionTimeHistory {
		o.ctCount++
	}
}

// sortedLayerInfos returns the layer infos sorted by z-order.
func (o *Output) sortedLayerInfos() []models.LayerInfo {
	infos := make([]models.LayerInfo, 0, len(o.layers))
	for _, l := range o.layers {
		infos = append(infos, l.info)
	}
	slices.SortFunc(infos, func(a, b models.LayerInfo) int {
		if c := cmp.Compare(a.ZOrder, b.ZOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.SurfaceID, b.SurfaceID)
	})
	return infos
}

func (o *Output) hasClientLayers() bool {
	for _, l := range o.layers {
		if l.info.CompositionType == models.CompositionClient {
			return true
		}
	}
	return false
}

func (o *Output) layerByID(id models.LayerID) *Layer {
	for _, l := range o.layers {
		if l.id == id {
			return l
		}
	}
	return nil
}
