// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package composer implements the composition decision engine. It owns the
// scene (surfaces created and mutated by client commands), decides per
// screen and per frame how the scene is composed, and keeps the DFX
// counters that describe those decisions.
package composer

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

// Engine turns the scene into frame plans. Apply and Decide must be called
// from the composition goroutine; the DFX accessors are safe from any
// goroutine.
type Engine struct {
	scene       *scene
	frameNumber uint64

	redrawMu   sync.Mutex
	fullRedraw map[models.ScreenID]bool

	dirty *DirtyRegionCollector
	modes *SynthesisModeCounter

	now    func() time.Time
	logger *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		scene:      newScene(),
		fullRedraw: make(map[models.ScreenID]bool),
		dirty:      NewDirtyRegionCollector(),
		modes:      &SynthesisModeCounter{},
		now:        time.Now,
		logger:     log.Component("composer"),
	}
}

// Apply applies drained commands in order. Commands that cannot be applied
// (unknown surface, duplicate create, a surface owned by another process)
// are skipped and logged; they never stop the remaining commands.
func (e *Engine) Apply(cmds []models.Command) (applied, skipped int) {
	for _, cmd := range cmds {
		if err := e.scene.apply(cmd); err != nil {
			skipped++
			e.logger.Debug().Err(err).Int32("pid", cmd.Pid).Uint64("version", cmd.Version).
				Str("type", string(cmd.Type)).Msg("command skipped")
			continue
		}
		applied++
	}
	return applied, skipped
}

// RequestFullRedraw makes the next plan for screenID a redraw.
func (e *Engine) RequestFullRedraw(screenID models.ScreenID) {
	e.redrawMu.Lock()
	defer e.redrawMu.Unlock()
	e.fullRedraw[screenID] = true
}

func (e *Engine) takeFullRedraw(screenID models.ScreenID) bool {
	e.redrawMu.Lock()
	defer e.redrawMu.Unlock()

	pending := e.fullRedraw[screenID]
	delete(e.fullRedraw, screenID)
	return pending
}

// chooseMode applies the composition policy for n presentable surfaces.
func chooseMode(surfaces []*Surface, capacity int) models.CompositionMode {
	if len(surfaces) == 1 {
		return models.CompositionUniform
	}
	if len(surfaces) > capacity {
		return models.CompositionUniform
	}
	for _, s := range surfaces {
		if !s.Compatible {
			return models.CompositionUniform
		}
	}
	return models.CompositionOffline
}

// Decide produces one plan per screen that has something to present. Screens
// without presentable surfaces get no plan. Frames are counted only once
// presented, see RecordPresented.
func (e *Engine) Decide(screens []models.ScreenCapability) []models.FramePlan {
	plans := make([]models.FramePlan, 0, len(screens))

	for _, screen := range screens {
		surfaces := e.scene.onScreen(screen.ScreenID)
		if len(surfaces) == 0 {
			continue
		}

		mode := chooseMode(surfaces, screen.LayerCapacity)
		if e.takeFullRedraw(screen.ScreenID) {
			mode = models.CompositionRedraw
		}

		e.frameNumber++
		plan := models.FramePlan{
			ScreenID:    screen.ScreenID,
			FrameNumber: e.frameNumber,
			Mode:        mode,
			Surfaces:    make([]models.SurfacePlan, 0, len(surfaces)),
		}

		var damage models.Rect
		if mode == models.CompositionRedraw {
			damage = models.Rect{W: screen.Width, H: screen.Height}
		}

		for _, s := range surfaces {
			sp := e.planSurface(s, mode)
			for _, r := range sp.Dirty {
				damage = damage.Union(models.Rect{X: s.Rect.X + r.X, Y: s.Rect.Y + r.Y, W: r.W, H: r.H})
			}
			plan.Surfaces = append(plan.Surfaces, sp)
		}

		for _, sp := range plan.Surfaces {
			if len(sp.Dirty) == 0 {
				continue
			}
			if err := e.dirty.UpdateGlobalDirtyInfo(sp.SurfaceID, damage); err != nil {
				e.logger.Warn().Err(err).Uint64("surface_id", uint64(sp.SurfaceID)).Msg("global dirty region not recorded")
			}
		}

		plans = append(plans, plan)
	}

	return plans
}

// planSurface builds the surface plan and consumes its accumulated damage.
// A surface whose damage set was invalid is redrawn completely.
func (e *Engine) planSurface(s *Surface, mode models.CompositionMode) models.SurfacePlan {
	sp := models.SurfacePlan{
		SurfaceID: s.ID,
		Rect:      s.Rect,
		ZOrder:    s.ZOrder,
		Transform: s.Transform,
		Buffer:    s.Buffer,
	}

	full := models.Rect{W: s.Rect.W, H: s.Rect.H}
	switch {
	case s.invalidDirty:
		sp.ForceRedraw = true
		sp.Dirty = []models.Rect{full}
		e.logger.Debug().Uint64("surface_id", uint64(s.ID)).Msg("invalid dirty region, forcing surface redraw")
	case mode == models.CompositionRedraw:
		sp.Dirty = []models.Rect{full}
	case len(s.dirty) > 0:
		sp.Dirty = s.dirty
	}

	if len(sp.Dirty) == 0 {
		e.dirty.AddSkipProcessFrame(s.ID)
	} else if err := e.dirty.UpdateActiveDirtyInfo(s.ID, s.Name, sp.Dirty); err != nil {
		e.logger.Warn().Err(err).Uint64("surface_id", uint64(s.ID)).Msg("active dirty region not recorded")
	}

	s.dirty = nil
	s.invalidDirty = false

	return sp
}

// RecordPresented counts one presented frame of screenID in mode. Plans that
// were never presented (screen detached, device failure) are not recorded,
// so the synthesis counters describe frames that reached the screen.
func (e *Engine) RecordPresented(screenID models.ScreenID, mode models.CompositionMode) {
	e.modes.Inc(mode)
	if !e.modes.Consistent() {
		e.logger.Invariant().Interface("synthesis", e.modes.Info()).Msg("synthesis mode counters inconsistent")
		e.RequestFullRedraw(screenID)
	}
}

// UpdateRedrawFrameNumberForDFX reclassifies the last offline frame as a
// redraw, used when the hardware rejected an offline plan and the frame was
// composed on the GPU after all.
func (e *Engine) UpdateRedrawFrameNumberForDFX() error {
	if err := e.modes.MoveOfflineToRedraw(); err != nil {
		e.logger.Invariant().Err(err).Interface("synthesis", e.modes.Info()).
			Msg("redraw frame update without an offline frame")
		return err
	}
	return nil
}

// UpdateActiveDirtyInfo records a surface's own damage for one frame.
func (e *Engine) UpdateActiveDirtyInfo(id models.SurfaceID, rects []models.Rect) error {
	return e.dirty.UpdateActiveDirtyInfo(id, "", rects)
}

// UpdateGlobalDirtyInfo records the screen damage a surface was presented with.
func (e *Engine) UpdateGlobalDirtyInfo(id models.SurfaceID, rect models.Rect) error {
	return e.dirty.UpdateGlobalDirtyInfo(id, rect)
}

func (e *Engine) GetGpuDirtyRegionInfo(id models.SurfaceID) models.GpuDirtyRegionInfo {
	return e.dirty.Get(id)
}

func (e *Engine) GetAllGpuDirtyRegionInfo() []models.GpuDirtyRegionInfo {
	return e.dirty.All()
}

func (e *Engine) GetLayerSynthesisModeInfo() models.LayerSynthesisModeInfo {
	return e.modes.Info()
}

// ResetCheckpoint clears every DFX counter and returns the cleared values.
func (e *Engine) ResetCheckpoint() models.DFXCheckpoint {
	return models.DFXCheckpoint{
		CreatedAt:    e.now().UTC(),
		Synthesis:    e.modes.Reset(),
		DirtyRegions: e.dirty.Reset(),
	}
}

// SurfaceCount returns the number of live surfaces.
func (e *Engine) SurfaceCount() int {
	return len(e.scene.surfaces)
}

// DropClient removes every surface owned by pid.
func (e *Engine) DropClient(pid int32) int {
	removed := 0
	for id, s := range e.scene.surfaces {
		if s.Pid == pid {
			delete(e.scene.surfaces, id)
			removed++
		}
	}
	return removed
}
