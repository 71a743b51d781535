// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	checkpointsTable  = "dfx_checkpoints"
	dirtyRegionsTable = "dfx_dirty_regions"
)

var (
	checkpointColumns = []string{
		"created_at",
		"uniform_frames",
		"offline_frames",
		"redraw_frames",
		"total_frames",
	}

	dirtyRegionColumns = []string{
		"checkpoint_id",
		"surface_id",
		"window_name",
		"active_area",
		"global_area",
		"active_frames",
		"global_frames",
		"skip_frames",
	}
)
