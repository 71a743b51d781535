// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vsync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
)

const (
	// MaxRefreshRate is the highest refresh rate the generator accepts.
	MaxRefreshRate = 360

	maxWakeupDelay = 1500 * time.Microsecond
	// the wakeup delay is a running average weighted 63:1 towards history
	wakeupDelaySmoothing = 64
)

// Tick is one hardware vsync pulse.
type Tick struct {
	// Timestamp is the wall-clock time of the pulse in nanoseconds.
	Timestamp int64
	// Period is the hardware period in effect when the pulse fired.
	Period time.Duration
	// Count is the number of pulses since the generator started.
	Count uint64
}

// GeneratorStats is a snapshot of the timing source.
type GeneratorStats struct {
	RefreshRate   uint32        `json:"refresh_rate"`
	Period        time.Duration `json:"period"`
	WakeupDelay   time.Duration `json:"wakeup_delay"`
	Ticks         uint64        `json:"ticks"`
	DroppedTicks  uint64        `json:"dropped_ticks"`
	LastTimestamp int64         `json:"last_timestamp"`
}

// Generator is a software timing source that emulates the hardware vsync
// signal. Ticks are aligned to a reference time so a late wakeup does not
// shift later pulses; the observed lateness is fed back into the next sleep.
type Generator struct {
	mu          sync.Mutex
	refreshRate uint32
	period      time.Duration
	wakeupDelay time.Duration
	reset       chan struct{}

	ticks         atomic.Uint64
	droppedTicks  atomic.Uint64
	lastTimestamp atomic.Int64

	now    func() time.Time
	logger *logger.Logger
}

// NewGenerator returns a generator running at refreshRate Hz.
func NewGenerator(refreshRate uint32, log *logger.Logger) (*Generator, error) {
	if refreshRate == 0 || refreshRate > MaxRefreshRate {
		return nil, ErrInvalidRefreshRate
	}

	return &Generator{
		refreshRate: refreshRate,
		period:      periodOf(refreshRate),
		reset:       make(chan struct{}, 1),
		now:         time.Now,
		logger:      log.Component("vsync-generator"),
	}, nil
}

func periodOf(refreshRate uint32) time.Duration {
	return time.Second / time.Duration(refreshRate)
}

// SetRefreshRate changes the hardware rate. A running generator re-anchors
// its reference time at the next wakeup.
func (g *Generator) SetRefreshRate(refreshRate uint32) error {
	if refreshRate == 0 || refreshRate > MaxRefreshRate {
		return ErrInvalidRefreshRate
	}

	g.mu.Lock()
	changed := g.refreshRate != refreshRate
	g.refreshRate = refreshRate
	g.period = periodOf(refreshRate)
	g.wakeupDelay = 0
	g.mu.Unlock()

	if changed {
		select {
		case g.reset <- struct{}{}:
		default:
		}
		g.logger.Info().Uint32("refresh_rate", refreshRate).Msg("refresh rate changed")
	}

	return nil
}

// RefreshRate returns the current rate in Hz.
func (g *Generator) RefreshRate() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refreshRate
}

// Period returns the current hardware period.
func (g *Generator) Period() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.period
}

// Stats returns a snapshot of the generator state.
func (g *Generator) Stats() GeneratorStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GeneratorStats{
		RefreshRate:   g.refreshRate,
		Period:        g.period,
		WakeupDelay:   g.wakeupDelay,
		Ticks:         g.ticks.Load(),
		DroppedTicks:  g.droppedTicks.Load(),
		LastTimestamp: g.lastTimestamp.Load(),
	}
}

// Start runs the timing loop in its own goroutine until ctx is done. Ticks
// are published on the returned channel, which holds at most one pending
// tick; if the consumer has not taken the previous tick it is dropped and
// counted. The channel is closed when the loop exits.
func (g *Generator) Start(ctx context.Context) <-chan Tick {
	out := make(chan Tick, 1)

	go func() {
		defer close(out)
		g.run(ctx, func(t Tick) {
			select {
			case out <- t:
			default:
				g.droppedTicks.Add(1)
			}
		})
	}()

	return out
}

func (g *Generator) run(ctx context.Context, emit func(Tick)) {
	reference := g.now()
	g.logger.Debug().Uint32("refresh_rate", g.RefreshRate()).Msg("vsync generator started")

	for {
		g.mu.Lock()
		period := g.period
		delay := g.wakeupDelay
		g.mu.Unlock()

		now := g.now()
		target := nextTickTime(now, reference, period).Add(-delay)

		timer := time.NewTimer(target.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			g.logger.Debug().Msg("vsync generator stopped")
			return
		case <-g.reset:
			timer.Stop()
			reference = g.now()
			continue
		case <-timer.C:
		}

		woke := g.now()
		g.updateWakeupDelay(woke.Sub(target))

		ts := woke.UnixNano()
		g.lastTimestamp.Store(ts)
		emit(Tick{Timestamp: ts, Period: period, Count: g.ticks.Add(1)})
	}
}

// nextTickTime returns the first pulse strictly after now on the grid
// reference + n*period.
func nextTickTime(now, reference time.Time, period time.Duration) time.Time {
	if period <= 0 {
		return now
	}
	elapsed := now.Sub(reference)
	if elapsed < 0 {
		return reference
	}
	n := elapsed/period + 1
	return reference.Add(n * period)
}

func (g *Generator) updateWakeupDelay(late time.Duration) {
	if late < 0 {
		late = 0
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.wakeupDelay = smoothWakeupDelay(g.wakeupDelay, late)
}

func smoothWakeupDelay(current, late time.Duration) time.Duration {
	next := (current*(wakeupDelaySmoothing-1) + late) / wakeupDelaySmoothing
	if next > maxWakeupDelay {
		return maxWakeupDelay
	}
	return next
}
