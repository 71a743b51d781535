// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SurfaceID identifies a client surface (a scene node that owns buffers).
type SurfaceID uint64

// BufferHandle is an opaque reference to a graphics buffer produced by a
// client. Zero means "no buffer".
type BufferHandle uint64

// CommandType names a scene mutation carried by a transaction.
type CommandType string

const (
	CommandCreateSurface         CommandType = "create_surface"
	CommandUpdateGeometry        CommandType = "update_geometry"
	CommandSetVisible            CommandType = "set_visible"
	CommandSetZOrder             CommandType = "set_z_order"
	CommandAttachBuffer          CommandType = "attach_buffer"
	CommandMarkDirty             CommandType = "mark_dirty"
	CommandSetHardwareCompatible CommandType = "set_hardware_compatible"
	CommandRemoveSurface         CommandType = "remove_surface"
)

// IsKnown reports whether t is one of the supported command types.
func (t CommandType) IsKnown() bool {
	switch t {
	case CommandCreateSurface, CommandUpdateGeometry, CommandSetVisible, CommandSetZOrder,
		CommandAttachBuffer, CommandMarkDirty, CommandSetHardwareCompatible, CommandRemoveSurface:
		return true
	}
	return false
}

// Command is one scene mutation. Only the fields relevant to Type are read.
//
// Pid and Version are stamped by the synchronizer when the command is drained,
// so consumers can tell which transaction it came from.
type Command struct {
	Type      CommandType `json:"type" msgpack:"type"`
	SurfaceID SurfaceID   `json:"surface_id" msgpack:"surface_id"`

	ScreenID   ScreenID     `json:"screen_id,omitempty" msgpack:"screen_id"`
	Name       string       `json:"name,omitempty" msgpack:"name"`
	Rect       Rect         `json:"rect" msgpack:"rect"`
	Transform  Transform    `json:"transform,omitempty" msgpack:"transform"`
	ZOrder     int32        `json:"z_order,omitempty" msgpack:"z_order"`
	Visible    bool         `json:"visible,omitempty" msgpack:"visible"`
	Buffer     BufferHandle `json:"buffer,omitempty" msgpack:"buffer"`
	DirtyRects []Rect       `json:"dirty_rects,omitempty" msgpack:"dirty_rects"`
	Compatible bool         `json:"compatible,omitempty" msgpack:"compatible"`

	Pid     int32  `json:"pid,omitempty" msgpack:"pid"`
	Version uint64 `json:"version,omitempty" msgpack:"version"`
}

// Clone returns a deep copy of the command.
func (c Command) Clone() Command {
	if c.DirtyRects != nil {
		c.DirtyRects = append([]Rect(nil), c.DirtyRects...)
	}
	return c
}

// Transaction is an ordered batch of scene commands submitted by one client
// process. Versions are strictly increasing per Pid; SyncID is zero unless the
// transaction takes part in a synchronized multi-process update.
type Transaction struct {
	Pid       int32     `json:"pid" msgpack:"pid"`
	Version   uint64    `json:"version" msgpack:"version"`
	SyncID    uint64    `json:"sync_id,omitempty" msgpack:"sync_id"`
	Timestamp int64     `json:"timestamp,omitempty" msgpack:"timestamp"`
	Commands  []Command `json:"commands" msgpack:"commands"`
}

// Clone returns a deep copy of the transaction so later mutation of the
// caller's slices cannot leak into queued state.
func (t Transaction) Clone() Transaction {
	if t.Commands != nil {
		cmds := make([]Command, len(t.Commands))
		for i, c := range t.Commands {
			cmds[i] = c.Clone()
		}
		t.Commands = cmds
	}
	return t
}

// SyncTransactionRequest opens a synchronization barrier for the listed
// participant processes.
type SyncTransactionRequest struct {
	SyncID       uint64  `json:"sync_id"`
	Participants []int32 `json:"participants"`
}
