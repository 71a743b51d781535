// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// GpuDirtyRegionInfo aggregates dirty-region statistics for one surface.
// Averages are zero when no frame has been observed.
type GpuDirtyRegionInfo struct {
	SurfaceID                    SurfaceID `json:"surface_id"`
	WindowName                   string    `json:"window_name,omitempty"`
	ActiveDirtyRegionArea        int64     `json:"active_dirty_region_area"`
	GlobalDirtyRegionArea        int64     `json:"global_dirty_region_area"`
	ActiveFramesNumber           int64     `json:"active_frames_number"`
	GlobalFramesNumber           int64     `json:"global_frames_number"`
	SkipProcessFramesNumber      int64     `json:"skip_process_frames_number"`
	ActiveDirtyRegionAreaAverage int64     `json:"active_dirty_region_area_average"`
	GlobalDirtyRegionAreaAverage int64     `json:"global_dirty_region_area_average"`
}

// LayerSynthesisModeInfo counts frames per composition mode.
// UniformFrames + OfflineFrames + RedrawFrames always equals TotalFrames.
type LayerSynthesisModeInfo struct {
	UniformFrames int64 `json:"uniform_frames"`
	OfflineFrames int64 `json:"offline_frames"`
	RedrawFrames  int64 `json:"redraw_frames"`
	TotalFrames   int64 `json:"total_frames"`
}

// DFXCheckpoint is a snapshot of the DFX counters taken when they were reset.
type DFXCheckpoint struct {
	ID           int64                  `json:"id,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	Synthesis    LayerSynthesisModeInfo `json:"synthesis"`
	DirtyRegions []GpuDirtyRegionInfo   `json:"dirty_regions,omitempty"`
}
