// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package composer

import (
	"cmp"
	"slices"
	"sync"

	"github.com/MKhiriev/go-compositor/models"
)

type dirtyStats struct {
	windowName   string
	activeArea   int64
	globalArea   int64
	activeFrames int64
	globalFrames int64
	skipFrames   int64
}

// DirtyRegionCollector accumulates dirty-region areas per surface. Reads come
// from the DFX endpoints, writes from the composition goroutine.
type DirtyRegionCollector struct {
	mu    sync.Mutex
	stats map[models.SurfaceID]*dirtyStats
}

func NewDirtyRegionCollector() *DirtyRegionCollector {
	return &DirtyRegionCollector{stats: make(map[models.SurfaceID]*dirtyStats)}
}

func (c *DirtyRegionCollector) entry(id models.SurfaceID) *dirtyStats {
	st, ok := c.stats[id]
	if !ok {
		st = &dirtyStats{}
		c.stats[id] = st
	}
	return st
}

// UpdateActiveDirtyInfo adds the area of the surface's own dirty rectangles
// for one frame. Nothing is recorded if any rectangle is invalid.
func (c *DirtyRegionCollector) UpdateActiveDirtyInfo(id models.SurfaceID, windowName string, rects []models.Rect) error {
	var area int64
	for _, r := range rects {
		if !r.IsValid() {
			return ErrInvalidDirtyRegion
		}
		area += r.Area()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.entry(id)
	if windowName != "" {
		st.windowName = windowName
	}
	st.activeArea += area
	st.activeFrames++

	return nil
}

// UpdateGlobalDirtyInfo adds the area of the screen-wide damage rectangle the
// surface was presented with.
func (c *DirtyRegionCollector) UpdateGlobalDirtyInfo(id models.SurfaceID, rect models.Rect) error {
	if !rect.IsValid() {
		return ErrInvalidDirtyRegion
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.entry(id)
	st.globalArea += rect.Area()
	st.globalFrames++

	return nil
}

// AddSkipProcessFrame counts a frame in which the surface was not processed.
func (c *DirtyRegionCollector) AddSkipProcessFrame(id models.SurfaceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(id).skipFrames++
}

// Get returns the statistics of one surface. Averages are zero when no frame
// was recorded.
func (c *DirtyRegionCollector) Get(id models.SurfaceID) models.GpuDirtyRegionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.stats[id]
	if !ok {
		return models.GpuDirtyRegionInfo{SurfaceID: id}
	}
	return st.info(id)
}

// All returns the statistics of every surface ordered by id.
func (c *DirtyRegionCollector) All() []models.GpuDirtyRegionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Reset clears every statistic and returns what was cleared.
func (c *DirtyRegionCollector) Reset() []models.GpuDirtyRegionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos := c.snapshot()
	c.stats = make(map[models.SurfaceID]*dirtyStats)
	return infos
}

func (c *DirtyRegionCollector) snapshot() []models.GpuDirtyRegionInfo {
	infos := make([]models.GpuDirtyRegionInfo, 0, len(c.stats))
	for id, st := range c.stats {
		infos = append(infos, st.info(id))
	}
	slices.SortFunc(infos, func(a, b models.GpuDirtyRegionInfo) int {
		return cmp.Compare(a.SurfaceID, b.SurfaceID)
	})
	return infos
}

func (st *dirtyStats) info(id models.SurfaceID) models.GpuDirtyRegionInfo {
	info := models.GpuDirtyRegionInfo{
		SurfaceID:               id,
		WindowName:              st.windowName,
		ActiveDirtyRegionArea:   st.activeArea,
		GlobalDirtyRegionArea:   st.globalArea,
		ActiveFramesNumber:      st.activeFrames,
		GlobalFramesNumber:      st.globalFrames,
		SkipProcessFramesNumber: st.skipFrames,
	}
	if st.activeFrames > 0 {
		info.ActiveDirtyRegionAreaAverage = st.activeArea / st.activeFrames
	}
	if st.globalFrames > 0 {
		info.GlobalDirtyRegionAreaAverage = st.globalArea / st.globalFrames
	}
	return info
}
