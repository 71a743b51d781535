// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vsync

import (
	"cmp"
	"slices"
	"sync"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

// Distributor is the connection table. Clients mutate it from transport
// goroutines; OnVSync is called from the composition goroutine.
type Distributor struct {
	mu             sync.Mutex
	conns          map[models.ConnectionID]*Connection
	nextID         models.ConnectionID
	maxConnections int

	logger *logger.Logger
}

// NewDistributor returns an empty table admitting up to maxConnections.
func NewDistributor(maxConnections int, log *logger.Logger) *Distributor {
	return &Distributor{
		conns:          make(map[models.ConnectionID]*Connection),
		maxConnections: maxConnections,
		logger:         log.Component("vsync-distributor"),
	}
}

// CreateConnection registers a new, unarmed connection with rate 1.
func (d *Distributor) CreateConnection(pid int32, name string) (*Connection, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.conns) >= d.maxConnections {
		d.logger.Warn().Int32("pid", pid).Str("name", name).Int("max", d.maxConnections).
			Msg("connection table full")
		return nil, ErrConnectionTableFull
	}

	d.nextID++
	conn := newConnection(d.nextID, pid, name)
	d.conns[conn.id] = conn

	d.logger.Debug().Uint64("connection_id", uint64(conn.id)).Int32("pid", pid).Str("name", name).
		Msg("vsync connection created")

	return conn, nil
}

// Connection looks up a live connection.
func (d *Distributor) Connection(id models.ConnectionID) (*Connection, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	conn, ok := d.conns[id]
	return conn, ok
}

// RequestNextVSync arms the connection for one delivery. Requests made while
// the connection is already armed collapse into the pending one.
func (d *Distributor) RequestNextVSync(id models.ConnectionID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	conn, ok := d.conns[id]
	if !ok {
		return ErrConnectionNotFound
	}

	if !conn.armed {
		conn.armed = true
		conn.ticksSinceArm = 0
	}

	return nil
}

// SetRate sets how many hardware ticks make up one signal for the
// connection. With autoTrigger the connection is armed immediately and stays
// armed after every delivery.
func (d *Distributor) SetRate(id models.ConnectionID, rate int32, autoTrigger bool) error {
	if rate < 1 {
		return ErrInvalidRate
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	conn, ok := d.conns[id]
	if !ok {
		return ErrConnectionNotFound
	}

	conn.rate = rate
	conn.autoTrigger = autoTrigger
	if autoTrigger && !conn.armed {
		conn.armed = true
		conn.ticksSinceArm = 0
	}

	return nil
}

// OnVSync delivers tick to every armed connection whose rate divider has
// elapsed and returns the number of deliveries. Non-auto connections are
// disarmed after delivery. Timestamps that do not advance past the last one
// delivered to a connection are skipped.
func (d *Distributor) OnVSync(tick Tick) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	ev := models.VSyncEvent{
		Timestamp:  tick.Timestamp,
		Period:     int64(tick.Period),
		FrameCount: tick.Count,
	}

	delivered := 0
	for _, conn := range d.conns {
		if !conn.armed {
			continue
		}

		conn.ticksSinceArm++
		if conn.ticksSinceArm < conn.rate {
			continue
		}
		conn.ticksSinceArm = 0

		if tick.Timestamp <= conn.lastTimestamp {
			d.logger.Warn().Uint64("connection_id", uint64(conn.id)).
				Int64("timestamp", tick.Timestamp).Int64("last", conn.lastTimestamp).
				Msg("non-monotonic vsync timestamp skipped")
			continue
		}
		conn.lastTimestamp = tick.Timestamp

		conn.publish(ev)
		conn.delivered++
		delivered++

		if !conn.autoTrigger {
			conn.armed = false
		}
	}

	return delivered
}

// RemoveConnection drops a connection and closes its Done channel. Removing
// an unknown id is a no-op that reports false.
func (d *Distributor) RemoveConnection(id models.ConnectionID) bool {
	d.mu.Lock()
	conn, ok := d.conns[id]
	if ok {
		delete(d.conns, id)
	}
	d.mu.Unlock()

	if ok {
		conn.close()
		d.logger.Debug().Uint64("connection_id", uint64(id)).Msg("vsync connection removed")
	}

	return ok
}

// OnPeerLost removes every connection owned by pid and returns how many were
// removed. Pending requests of those connections are cancelled with them.
func (d *Distributor) OnPeerLost(pid int32) int {
	d.mu.Lock()
	var lost []*Connection
	for id, conn := range d.conns {
		if conn.pid == pid {
			lost = append(lost, conn)
			delete(d.conns, id)
		}
	}
	d.mu.Unlock()

	for _, conn := range lost {
		conn.close()
	}

	if len(lost) > 0 {
		d.logger.Info().Int32("pid", pid).Int("connections", len(lost)).Msg("peer lost, vsync connections removed")
	}

	return len(lost)
}

// Len returns the number of live connections.
func (d *Distributor) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}

// Stats returns a snapshot of every connection ordered by id.
func (d *Distributor) Stats() []models.VSyncConnectionInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	infos := make([]models.VSyncConnectionInfo, 0, len(d.conns))
	for _, conn := range d.conns {
		infos = append(infos, conn.info())
	}
	slices.SortFunc(infos, func(a, b models.VSyncConnectionInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return infos
}
