// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package composer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-compositor/models"
)

// Surface is the engine's view of one client surface.
type Surface struct {
	ID         models.SurfaceID
	Pid        int32
	ScreenID   models.ScreenID
	Name       string
	Rect       models.Rect
	Transform  models.Transform
	ZOrder     int32
	Visible    bool
	Buffer     models.BufferHandle
	Compatible bool

	// accumulated since the last plan
	dirty        []models.Rect
	invalidDirty bool
}

func (s *Surface) presentable() bool {
	return s.Visible && !s.Rect.IsEmpty()
}

// scene is the set of live surfaces. It is only touched on the composition
// goroutine.
type scene struct {
	surfaces map[models.SurfaceID]*Surface
}

func newScene() *scene {
	return &scene{surfaces: make(map[models.SurfaceID]*Surface)}
}

func (sc *scene) apply(cmd models.Command) error {
	if cmd.Type == models.CommandCreateSurface {
		if _, ok := sc.surfaces[cmd.SurfaceID]; ok {
			return fmt.Errorf("surface %d: %w", cmd.SurfaceID, ErrSurfaceExists)
		}
		sc.surfaces[cmd.SurfaceID] = &Surface{
			ID:         cmd.SurfaceID,
			Pid:        cmd.Pid,
			ScreenID:   cmd.ScreenID,
			Name:       cmd.Name,
			Rect:       cmd.Rect,
			Transform:  cmd.Transform,
			ZOrder:     cmd.ZOrder,
			Visible:    cmd.Visible,
			Buffer:     cmd.Buffer,
			Compatible: cmd.Compatible,
			dirty:      []models.Rect{{W: cmd.Rect.W, H: cmd.Rect.H}},
		}
		return nil
	}

	s, ok := sc.surfaces[cmd.SurfaceID]
	if !ok {
		return fmt.Errorf("surface %d: %w", cmd.SurfaceID, ErrUnknownSurface)
	}
	// only the creating process may change a surface
	if cmd.Pid != s.Pid {
		return fmt.Errorf("surface %d owned by pid %d: %w", cmd.SurfaceID, s.Pid, ErrForeignSurface)
	}

	switch cmd.Type {
	case models.CommandUpdateGeometry:
		s.Rect = cmd.Rect
		s.Transform = cmd.Transform
		s.markDirty(models.Rect{W: cmd.Rect.W, H: cmd.Rect.H})
	case models.CommandSetVisible:
		s.Visible = cmd.Visible
	case models.CommandSetZOrder:
		s.ZOrder = cmd.ZOrder
	case models.CommandAttachBuffer:
		s.Buffer = cmd.Buffer
	case models.CommandMarkDirty:
		for _, r := range cmd.DirtyRects {
			s.markDirty(r)
		}
	case models.CommandSetHardwareCompatible:
		s.Compatible = cmd.Compatible
	case models.CommandRemoveSurface:
		delete(sc.surfaces, cmd.SurfaceID)
	default:
		return fmt.Errorf("command %q: %w", cmd.Type, models.ErrInvalidArgument)
	}

	return nil
}

func (s *Surface) markDirty(r models.Rect) {
	if !r.IsValid() {
		s.invalidDirty = true
		return
	}
	s.dirty = append(s.dirty, r)
}

// onScreen returns the presentable surfaces of screenID sorted by z-order,
// ties broken by id.
func (sc *scene) onScreen(screenID models.ScreenID) []*Surface {
	var out []*Surface
	for _, s := range sc.surfaces {
		if s.ScreenID == screenID && s.presentable() {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b *Surface) int {
		if c := cmp.Compare(a.ZOrder, b.ZOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
