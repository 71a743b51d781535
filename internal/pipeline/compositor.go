// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pipeline runs the composition loop. It is the only package that
// holds the VSync dispatcher, the transaction synchronizer, the decision
// engine and the hardware backend together.
//
// One goroutine (Run) owns the backend tables and the scene. Every VSync tick
// it applies queued hotplug events, signals armed VSync connections, drains
// ready transactions into the engine, plans the frame for every active screen
// and repaints. Work from other goroutines that needs the backend is handed
// to the loop through Do.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/composer"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
)

// Components are the collaborators a Compositor drives.
type Components struct {
	Generator    *vsync.Generator
	Distributor  *vsync.Distributor
	Synchronizer *transaction.Synchronizer
	Engine       *composer.Engine
	Backend      *backend.Backend
	Metrics      *metrics.Metrics
}

// FrameReport summarizes one composed frame.
type FrameReport struct {
	Tick      vsync.Tick
	Delivered int
	Applied   int
	Skipped   int
	Plans     []models.FramePlan
	Results   []backend.RepaintResult
}

type task struct {
	fn   func()
	done chan struct{}
}

// Compositor is the composition loop. It implements backend.Executor.
type Compositor struct {
	generator    *vsync.Generator
	distributor  *vsync.Distributor
	synchronizer *transaction.Synchronizer
	engine       *composer.Engine
	backend      *backend.Backend
	metrics      *metrics.Metrics

	// mu serializes frames and handed-off tasks.
	mu    sync.Mutex
	tasks chan task

	stateMu  sync.Mutex
	running  bool
	loopDone chan struct{}

	now    func() time.Time
	logger *logger.Logger
}

// NewCompositor wires the components together and registers the hardware
// callbacks. Screens the device already knows are reported through the
// hotplug queue and attached on the first frame.
func NewCompositor(c Components, log *logger.Logger) (*Compositor, error) {
	if c.Generator == nil || c.Distributor == nil || c.Synchronizer == nil ||
		c.Engine == nil || c.Backend == nil || c.Metrics == nil {
		return nil, ErrNilComponent
	}

	comp := &Compositor{
		generator:    c.Generator,
		distributor:  c.Distributor,
		synchronizer: c.Synchronizer,
		engine:       c.Engine,
		backend:      c.Backend,
		metrics:      c.Metrics,
		tasks:        make(chan task),
		now:          time.Now,
		logger:       log.Component("pipeline"),
	}

	if err := comp.backend.RegPrepareComplete(comp.onPrepareComplete); err != nil {
		return nil, err
	}
	if err := comp.backend.RegScreenHotplug(comp.onScreenHotplug); err != nil {
		return nil, err
	}
	comp.metrics.SetRefreshRate(comp.generator.RefreshRate())

	return comp, nil
}

// Run composes a frame per generator tick until ctx is done. It returns
// ErrAlreadyRunning when another Run is active.
func (c *Compositor) Run(ctx context.Context) error {
	c.stateMu.Lock()
	if c.running {
		c.stateMu.Unlock()
		return ErrAlreadyRunning
	}
	c.running = true
	loopDone := make(chan struct{})
	c.loopDone = loopDone
	c.stateMu.Unlock()

	defer func() {
		c.stateMu.Lock()
		c.running = false
		close(loopDone)
		c.stateMu.Unlock()
	}()

	c.logger.Info().Uint32("refresh_rate", c.generator.RefreshRate()).Msg("composition loop started")

	ticks := c.generator.Start(ctx)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("composition loop stopped")
			return nil
		case tick, ok := <-ticks:
			if !ok {
				return nil
			}
			c.ComposeFrame(ctx, tick)
		case t := <-c.tasks:
			c.mu.Lock()
			t.fn()
			c.mu.Unlock()
			close(t.done)
		}
	}
}

// Do runs fn on the composition goroutine and waits for it. When the loop is
// not running fn runs on the caller's goroutine, still serialized with
// frames. If ctx ends after fn was handed off, fn still runs.
func (c *Compositor) Do(ctx context.Context, fn func()) error {
	c.stateMu.Lock()
	running, loopDone := c.running, c.loopDone
	c.stateMu.Unlock()

	if !running {
		c.mu.Lock()
		defer c.mu.Unlock()
		fn()
		return nil
	}

	t := task{fn: fn, done: make(chan struct{})}
	select {
	case c.tasks <- t:
	case <-loopDone:
		return backend.ErrExecutorStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ComposeFrame runs one iteration of the loop for tick.
func (c *Compositor) ComposeFrame(ctx context.Context, tick vsync.Tick) FrameReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	report := FrameReport{Tick: tick}

	c.backend.ProcessEvents()

	report.Delivered = c.distributor.OnVSync(tick)
	c.metrics.AddVSyncDeliveries(report.Delivered)

	cmds := c.synchronizer.DrainForFrame(c.now())
	report.Applied, report.Skipped = c.engine.Apply(cmds)
	c.metrics.AddCommands(report.Applied, report.Skipped)

	report.Plans = c.engine.Decide(c.backend.Capabilities())
	report.Results = c.backend.Repaint(ctx, report.Plans)

	for _, res := range report.Results {
		c.recordResult(res)
	}
	c.updateGauges()

	return report
}

func (c *Compositor) recordResult(res backend.RepaintResult) {
	log := c.logger.With().Uint64("screen_id", uint64(res.ScreenID)).Uint64("frame", res.FrameNumber).Logger()

	switch {
	case res.Err != nil && !res.Skipped:
		c.metrics.IncRepaintErrors()
		log.Error().Err(res.Err).Msg("repaint failed")
	case res.Skipped:
		log.Debug().AnErr("reason", res.Err).Msg("repaint skipped")
	case res.ClientFallback:
		c.engine.RecordPresented(res.ScreenID, res.Mode)
		c.metrics.IncClientFallback()
		c.metrics.IncFrame(models.CompositionRedraw)
		c.reclassifyAsRedraw()
	default:
		c.engine.RecordPresented(res.ScreenID, res.Mode)
		c.metrics.IncFrame(res.Mode)
	}
}

// reclassifyAsRedraw moves the last offline frame to the redraw counter.
func (c *Compositor) reclassifyAsRedraw() {
	if err := c.engine.UpdateRedrawFrameNumberForDFX(); err != nil {
		c.logger.Error().Err(err).Msg("synthesis counters not updated")
	}
}

func (c *Compositor) updateGauges() {
	c.metrics.SetConnections(c.distributor.Len())
	c.metrics.SetScreens(len(c.backend.Outputs()))
	c.metrics.SetSurfaces(c.engine.SurfaceCount())

	pending := 0
	for _, n := range c.synchronizer.Pending() {
		pending += n
	}
	c.metrics.SetPendingTransactions(pending)
}

// onScreenHotplug runs on the composition goroutine from ProcessEvents.
func (c *Compositor) onScreenHotplug(out *backend.Output, connected bool) {
	log := c.logger.With().Uint64("screen_id", uint64(out.ScreenID())).Str("name", out.Name()).Logger()

	if !connected {
		log.Info().Msg("screen gone")
		return
	}

	c.engine.RequestFullRedraw(out.ScreenID())

	if rate := out.RefreshRate(); !out.IsVirtual() && rate > 0 && rate != c.generator.RefreshRate() {
		if err := c.generator.SetRefreshRate(rate); err != nil {
			log.Error().Err(err).Uint32("refresh_rate", rate).Msg("screen refresh rate not applied")
		} else {
			c.metrics.SetRefreshRate(rate)
			log.Info().Uint32("refresh_rate", rate).Msg("vsync refresh rate follows screen")
		}
	}

	log.Info().Int32("width", out.Width()).Int32("height", out.Height()).Msg("screen ready")
}

func (c *Compositor) onPrepareComplete(framebuffer models.BufferHandle, param backend.PrepareCompleteParam) {
	c.logger.Debug().
		Uint64("screen_id", uint64(param.ScreenID)).
		Uint64("frame", param.FrameNumber).
		Uint64("framebuffer", uint64(framebuffer)).
		Bool("flush_framebuffer", param.NeedFlushFramebuffer).
		Int("layers", len(param.Layers)).
		Msg("prepare complete")
}
