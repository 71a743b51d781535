// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

type simScreen struct {
	capability   models.ScreenCapability
	layers       map[models.LayerID]models.LayerInfo
	nextLayerID  models.LayerID
	clientBuffer models.BufferHandle
	commits      uint64
}

// SimDevice is a software hardware composer. It is used when no vendor
// driver is present and in tests. Screens are plugged and unplugged
// programmatically; plane capacity is enforced by GetScreenCompChange.
type SimDevice struct {
	mu      sync.Mutex
	screens map[models.ScreenID]*simScreen
	hotplug HotplugFunc

	now    func() time.Time
	logger *logger.Logger
}

func NewSimDevice(log *logger.Logger) *SimDevice {
	return &SimDevice{
		screens: make(map[models.ScreenID]*simScreen),
		now:     time.Now,
		logger:  log.Component("sim-device"),
	}
}

// Plug attaches a screen and reports it to the registered hotplug callback.
func (d *SimDevice) Plug(capability models.ScreenCapability) {
	d.mu.Lock()
	d.screens[capability.ScreenID] = &simScreen{
		capability: capability,
		layers:     make(map[models.LayerID]models.LayerInfo),
	}
	cb := d.hotplug
	d.mu.Unlock()

	d.logger.Debug().Uint64("screen_id", uint64(capability.ScreenID)).Msg("sim screen plugged")
	if cb != nil {
		cb(capability.ScreenID, true)
	}
}

// Unplug detaches a screen and reports it to the registered callback.
func (d *SimDevice) Unplug(screenID models.ScreenID) {
	d.mu.Lock()
	_, ok := d.screens[screenID]
	delete(d.screens, screenID)
	cb := d.hotplug
	d.mu.Unlock()

	if ok && cb != nil {
		cb(screenID, false)
	}
}

// RegHotPlugCallback stores cb and reports every attached screen to it.
func (d *SimDevice) RegHotPlugCallback(cb HotplugFunc) error {
	if cb == nil {
		return ErrNilCallback
	}

	d.mu.Lock()
	d.hotplug = cb
	ids := make([]models.ScreenID, 0, len(d.screens))
	for id := range d.screens {
		ids = append(ids, id)
	}
	d.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		cb(id, true)
	}
	return nil
}

func (d *SimDevice) screen(screenID models.ScreenID) (*simScreen, error) {
	s, ok := d.screens[screenID]
	if !ok {
		return nil, fmt.Errorf("screen %d: %w", screenID, models.ErrHardwareUnavailable)
	}
	return s, nil
}

func (d *SimDevice) GetScreenCapability(screenID models.ScreenID) (models.ScreenCapability, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.screen(screenID)
	if err != nil {
		return models.ScreenCapability{}, err
	}
	return s.capability, nil
}

func (d *SimDevice) CreateLayer(screenID models.ScreenID, info models.LayerInfo) (models.LayerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.screen(screenID)
	if err != nil {
		return 0, err
	}
	s.nextLayerID++
	s.layers[s.nextLayerID] = info
	return s.nextLayerID, nil
}

func (d *SimDevice) DestroyLayer(screenID models.ScreenID, layerID models.LayerID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.screen(screenID)
	if err != nil {
		return err
	}
	delete(s.layers, layerID)
	return nil
}

func (d *SimDevice) SetLayerInfo(screenID models.ScreenID, layerID models.LayerID, info models.LayerInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.screen(screenID)
	if err != nil {
		return err
	}
	if _, ok := s.layers[layerID]; !ok {
		return fmt.Errorf("layer %d on screen %d: %w", layerID, screenID, models.ErrInvalidArgument)
	}
	s.layers[layerID] = info
	return nil
}

// GetScreenCompChange moves device layers beyond the plane capacity, highest
// z-order first, to client composition.
func (d *SimDevice) GetScreenCompChange(screenID models.ScreenID) (map[models.LayerID]models.CompositionType, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.screen(screenID)
	if err != nil {
		return nil, err
	}

	var device []models.LayerID
	for id, info := range s.layers {
		if info.CompositionType == models.CompositionDevice {
			device = append(device, id)
		}
	}
	if len(device) <= s.capability.LayerCapacity {
		return nil, nil
	}

	slices.SortFunc(device, func(a, b models.LayerID) int {
		if c := cmp.Compare(s.layers[a].ZOrder, s.layers[b].ZOrder); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	changes := make(map[models.LayerID]models.CompositionType)
	for _, id := range device[s.capability.LayerCapacity:] {
		info := s.layers[id]
		info.CompositionType = models.CompositionClient
		s.layers[id] = info
		changes[id] = models.CompositionClient
	}
	return changes, nil
}

func (d *SimDevice) SetScreenClientBuffer(screenID models.ScreenID, buffer models.BufferHandle, _ []models.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.screen(screenID)
	if err != nil {
		return err
	}
	s.clientBuffer = buffer
	return nil
}

// Commit presents the screen immediately.
func (d *SimDevice) Commit(screenID models.ScreenID) (*Fence, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.screen(screenID)
	if err != nil {
		return nil, err
	}
	s.commits++
	return NewSignaledFence(d.now().UnixNano()), nil
}

// Commits returns how many frames were committed on screenID.
func (d *SimDevice) Commits(screenID models.ScreenID) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.screens[screenID]; ok {
		return s.commits
	}
	return 0
}

// LayerCount returns the number of device layers on screenID.
func (d *SimDevice) LayerCount(screenID models.ScreenID) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.screens[screenID]; ok {
		return len(s.layers)
	}
	return 0
}
