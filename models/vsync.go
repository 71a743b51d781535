// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectionID identifies a VSync connection inside the dispatcher.
type ConnectionID uint64

// VSyncEvent is delivered to a connection once per requested tick.
//
// Timestamp is in nanoseconds on the compositor clock, Period is the current
// hardware period in nanoseconds and FrameCount is the number of hardware
// ticks produced since the generator started.
type VSyncEvent struct {
	Timestamp  int64  `json:"timestamp" msgpack:"timestamp"`
	Period     int64  `json:"period" msgpack:"period"`
	FrameCount uint64 `json:"frame_count" msgpack:"frame_count"`
}

// VSyncConnectionInfo is a point-in-time view of one connection.
type VSyncConnectionInfo struct {
	ID          ConnectionID `json:"id"`
	Pid         int32        `json:"pid"`
	Name        string       `json:"name"`
	Rate        int32        `json:"rate"`
	AutoTrigger bool         `json:"auto_trigger"`
	Armed       bool         `json:"armed"`
	Delivered   uint64       `json:"delivered"`
	Dropped     uint64       `json:"dropped"`
}
