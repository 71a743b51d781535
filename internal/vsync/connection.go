// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vsync

import (
	"sync"

	"github.com/MKhiriev/go-compositor/models"
)

// Connection is one client's subscription to vsync events.
//
// Scheduling fields are guarded by the owning Distributor's mutex; the
// events channel and done channel are safe for concurrent use.
type Connection struct {
	id   models.ConnectionID
	pid  int32
	name string

	rate          int32
	autoTrigger   bool
	armed         bool
	ticksSinceArm int32
	lastTimestamp int64
	delivered     uint64
	dropped       uint64

	events    chan models.VSyncEvent
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(id models.ConnectionID, pid int32, name string) *Connection {
	return &Connection{
		id:     id,
		pid:    pid,
		name:   name,
		rate:   1,
		events: make(chan models.VSyncEvent, 1),
		done:   make(chan struct{}),
	}
}

func (c *Connection) ID() models.ConnectionID { return c.id }
func (c *Connection) Pid() int32 { return c.pid }
func (c *Connection) Name() string { return c.name }

// Receive returns the event mailbox. It holds at most one undelivered event.
func (c *Connection) Receive() <-chan models.VSyncEvent {
	return c.events
}

// Done is closed when the connection is removed.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// publish places ev in the mailbox, replacing an unconsumed older event.
// Only the distributor publishes, under its mutex, so after evicting the old
// event the send cannot block.
func (c *Connection) publish(ev models.VSyncEvent) {
	select {
	case c.events <- ev:
		return
	default:
	}

	select {
	case <-c.events:
		c.dropped++
	default:
	}

	select {
	case c.events <- ev:
	default:
		c.dropped++
	}
}

func (c *Connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Connection) info() models.VSyncConnectionInfo {
	return models.VSyncConnectionInfo{
		ID:          c.id,
		Pid:         c.pid,
		Name:        c.name,
		Rate:        c.rate,
		AutoTrigger: c.autoTrigger,
		Armed:       c.armed,
		Delivered:   c.delivered,
		Dropped:     c.dropped,
	}
}
