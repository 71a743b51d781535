// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package backend adapts composition plans to a hardware composer [Device].
//
// The backend keeps the table of outputs (screens) and their layers. The
// table is owned by the composition goroutine: device hotplug callbacks only
// enqueue events, which ProcessEvents applies on that goroutine, and other
// goroutines reach the table through an [Executor].
package backend

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

const (
	defaultEventQueueSize = 64
	firstVirtualScreenID  = models.ScreenID(1 << 32)
)

// Config tunes the backend.
type Config struct {
	// CallbackBudget is how long a registered callback may run before an
	// overrun is logged. Zero disables the check.
	CallbackBudget time.Duration
	// DirectClientComposition composes every layer on the GPU when an
	// output has more layers than hardware planes.
	DirectClientComposition bool
	// EventQueueSize bounds the pending hotplug events.
	EventQueueSize int
}

// HotplugCallback is told about screens that were attached or detached.
type HotplugCallback func(output *Output, connected bool)

// PrepareCompleteParam describes a frame that is about to be committed.
type PrepareCompleteParam struct {
	ScreenID             models.ScreenID
	FrameNumber          uint64
	NeedFlushFramebuffer bool
	// Layers are sorted by z-order.
	Layers []models.LayerInfo
}

// PrepareCompleteCallback runs after the layer set of a screen was validated
// and before commit. framebuffer is the client target the GPU composes into.
type PrepareCompleteCallback func(framebuffer models.BufferHandle, param PrepareCompleteParam)

// RepaintResult reports what happened to one plan.
type RepaintResult struct {
	ScreenID    models.ScreenID
	FrameNumber uint64
	Mode        models.CompositionMode
	// Presented is true when the frame was committed.
	Presented bool
	// Skipped is true when the screen was missing or not active.
	Skipped bool
	// ClientFallback is true when the device moved layers of an offline
	// plan to client composition.
	ClientFallback bool
	Fence          *Fence
	Err            error
}

type hotplugEvent struct {
	screenID  models.ScreenID
	connected bool
}

// Backend drives a [Device].
type Backend struct {
	device  Device
	cfg     Config
	outputs map[models.ScreenID]*Output
	events  chan hotplugEvent

	nextVirtualID models.ScreenID

	onHotplug         HotplugCallback
	onPrepareComplete PrepareCompleteCallback

	now    func() time.Time
	logger *logger.Logger
}

// NewBackend wraps device.
func NewBackend(device Device, cfg Config, log *logger.Logger) (*Backend, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if cfg.EventQueueSize <= 0 {
		cfg.EventQueueSize = defaultEventQueueSize
	}

	return &Backend{
		device:        device,
		cfg:           cfg,
		outputs:       make(map[models.ScreenID]*Output),
		events:        make(chan hotplugEvent, cfg.EventQueueSize),
		nextVirtualID: firstVirtualScreenID,
		now:           time.Now,
		logger:        log.Component("backend"),
	}, nil
}

// RegScreenHotplug registers cb and subscribes to device hotplug events.
func (b *Backend) RegScreenHotplug(cb HotplugCallback) error {
	if cb == nil {
		return ErrNilCallback
	}
	b.onHotplug = cb

	if err := b.device.RegHotPlugCallback(b.OnHotplugEvent); err != nil {
		return fmt.Errorf("%w: RegHotPlugCallback: %w", ErrDeviceAPIFailed, err)
	}
	return nil
}

// RegPrepareComplete registers the callback invoked before every commit.
func (b *Backend) RegPrepareComplete(cb PrepareCompleteCallback) error {
	if cb == nil {
		return ErrNilCallback
	}
	b.onPrepareComplete = cb
	return nil
}

// OnHotplugEvent is the device-facing hotplug entry point. It only queues
// the event and is safe to call from any goroutine.
func (b *Backend) OnHotplugEvent(screenID models.ScreenID, connected bool) {
	select {
	case b.events <- hotplugEvent{screenID: screenID, connected: connected}:
	default:
		b.logger.Error().Err(ErrEventQueueFull).Uint64("screen_id", uint64(screenID)).
			Bool("connected", connected).Msg("hotplug event dropped")
	}
}

// ProcessEvents applies every queued hotplug event and returns how many were
// applied. It must run on the composition goroutine.
func (b *Backend) ProcessEvents() int {
	n := 0
	for {
		select {
		case ev := <-b.events:
			b.handleHotplug(ev)
			n++
		default:
			return n
		}
	}
}

func (b *Backend) handleHotplug(ev hotplugEvent) {
	log := b.logger.With().Uint64("screen_id", uint64(ev.screenID)).Logger()

	out, exists := b.outputs[ev.screenID]

	if ev.connected {
		if exists && out.state != models.ScreenDisconnected {
			log.Warn().Msg("connect event for an attached screen ignored")
			return
		}
		if !exists {
			out = newOutput(ev.screenID)
		}

		out.state = models.ScreenConnecting
		capability, err := b.device.GetScreenCapability(ev.screenID)
		if err != nil {
			out.state = models.ScreenDisconnected
			log.Error().Err(err).Msg("screen capability query failed, screen not attached")
			return
		}
		out.name = capability.Name
		out.width = capability.Width
		out.height = capability.Height
		out.capacity = capability.LayerCapacity
		out.refreshRate = capability.RefreshRate
		out.state = models.ScreenActive
		b.outputs[ev.screenID] = out

		log.Info().Str("name", out.name).Int32("width", out.width).Int32("height", out.height).
			Msg("screen attached")
		b.notifyHotplug(out, true)
		return
	}

	if !exists {
		log.Warn().Msg("disconnect event for an unknown screen ignored")
		return
	}

	b.releaseLayers(out)
	wasConnected := out.state != models.ScreenDisconnected
	out.state = models.ScreenDisconnected
	if wasConnected {
		b.notifyHotplug(out, false)
	}
	delete(b.outputs, ev.screenID)
	log.Info().Msg("screen detached")
}

func (b *Backend) notifyHotplug(out *Output, connected bool) {
	if b.onHotplug == nil {
		return
	}
	start := b.now()
	b.onHotplug(out, connected)
	b.checkBudget("hotplug", out.screenID, start)
}

func (b *Backend) checkBudget(callback string, screenID models.ScreenID, start time.Time) {
	if b.cfg.CallbackBudget <= 0 {
		return
	}
	if elapsed := b.now().Sub(start); elapsed > b.cfg.CallbackBudget {
		b.logger.Warn().Str("callback", callback).Uint64("screen_id", uint64(screenID)).
			Dur("elapsed", elapsed).Dur("budget", b.cfg.CallbackBudget).Msg("callback overran its budget")
	}
}

// releaseLayers destroys every layer of out. Device errors are logged and
// ignored: the screen may already be gone.
func (b *Backend) releaseLayers(out *Output) {
	for surfaceID, l := range out.layers {
		if !out.virtual {
			if err := b.device.DestroyLayer(out.screenID, l.id); err != nil {
				b.logger.Debug().Err(err).Uint64("screen_id", uint64(out.screenID)).
					Uint32("layer_id", uint32(l.id)).Msg("layer release failed")
			}
		}
		delete(out.layers, surfaceID)
	}
}

// degrade disconnects out after a device failure. The output stays listed so
// a later connect event can bring it back.
func (b *Backend) degrade(out *Output, err error) {
	b.logger.Error().Err(err).Uint64("screen_id", uint64(out.screenID)).Msg("screen degraded after device failure")
	b.releaseLayers(out)
	out.state = models.ScreenDisconnected
	b.notifyHotplug(out, false)
}

// CreateVirtualScreen adds an offscreen output composed into producer. A
// zero req.ScreenID picks the next free virtual id.
func (b *Backend) CreateVirtualScreen(req models.VirtualScreenRequest) (models.ScreenID, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return 0, ErrInvalidScreenSize
	}

	id := req.ScreenID
	if id == 0 {
		for {
			id = b.nextVirtualID
			b.nextVirtualID++
			if _, taken := b.outputs[id]; !taken {
				break
			}
		}
	} else if _, taken := b.outputs[id]; taken {
		return 0, ErrScreenExists
	}

	out := newOutput(id)
	out.name = req.Name
	out.width = req.Width
	out.height = req.Height
	out.virtual = true
	out.producer = req.Producer
	out.flags = req.Flags
	out.framebuffer = req.Producer
	out.state = models.ScreenConnecting
	b.outputs[id] = out
	out.state = models.ScreenActive

	b.logger.Info().Uint64("screen_id", uint64(id)).Str("name", req.Name).
		Int32("width", req.Width).Int32("height", req.Height).Msg("virtual screen created")

	return id, nil
}

// RemoveVirtualScreen detaches every layer of the screen and drops it.
// Removing an unknown screen is a no-op.
func (b *Backend) RemoveVirtualScreen(id models.ScreenID) error {
	out, ok := b.outputs[id]
	if !ok {
		b.logger.Debug().Uint64("screen_id", uint64(id)).Msg("remove of unknown virtual screen ignored")
		return nil
	}
	if !out.virtual {
		return ErrNotVirtualScreen
	}

	b.releaseLayers(out)
	out.state = models.ScreenDisconnected
	delete(b.outputs, id)

	b.logger.Info().Uint64("screen_id", uint64(id)).Msg("virtual screen removed")
	return nil
}

// Output returns the output with id.
func (b *Backend) Output(id models.ScreenID) (*Output, bool) {
	out, ok := b.outputs[id]
	return out, ok
}

// Outputs returns a snapshot of every output ordered by id.
func (b *Backend) Outputs() []models.ScreenInfo {
	infos := make([]models.ScreenInfo, 0, len(b.outputs))
	for _, out := range b.outputs {
		infos = append(infos, out.Info())
	}
	slices.SortFunc(infos, func(a, c models.ScreenInfo) int {
		return cmp.Compare(a.ScreenID, c.ScreenID)
	})
	return infos
}

// Capabilities returns the active outputs the engine may plan for.
func (b *Backend) Capabilities() []models.ScreenCapability {
	caps := make([]models.ScreenCapability, 0, len(b.outputs))
	for _, out := range b.outputs {
		if out.state == models.ScreenActive {
			caps = append(caps, out.Capability())
		}
	}
	slices.SortFunc(caps, func(a, c models.ScreenCapability) int {
		return cmp.Compare(a.ScreenID, c.ScreenID)
	})
	return caps
}

// Repaint presents plans in order. Queued hotplug events are applied before
// each output, so a screen detached while an earlier one was being
// committed is skipped. A device failure degrades only its own screen.
func (b *Backend) Repaint(ctx context.Context, plans []models.FramePlan) []RepaintResult {
	results := make([]RepaintResult, 0, len(plans))

	for _, plan := range plans {
		b.ProcessEvents()

		res := RepaintResult{ScreenID: plan.ScreenID, FrameNumber: plan.FrameNumber, Mode: plan.Mode}

		if err := ctx.Err(); err != nil {
			res.Skipped = true
			res.Err = err
			results = append(results, res)
			continue
		}

		out, ok := b.outputs[plan.ScreenID]
		if !ok || out.state != models.ScreenActive {
			res.Skipped = true
			res.Err = ErrScreenDisconnected
			results = append(results, res)
			continue
		}

		out.state = models.ScreenRepainting
		fence, fallback, err := b.repaintOutput(out, plan)
		if err != nil {
			res.Err = err
			if errors.Is(err, models.ErrHardwareUnavailable) {
				b.degrade(out, err)
			} else {
				out.state = models.ScreenActive
			}
			results = append(results, res)
			continue
		}
		out.state = models.ScreenActive

		res.Presented = true
		res.ClientFallback = fallback
		res.Fence = fence
		results = append(results, res)
	}

	return results
}

func (b *Backend) repaintOutput(out *Output, plan models.FramePlan) (*Fence, bool, error) {
	if err := b.applyLayers(out, plan); err != nil {
		return nil, false, err
	}

	fallback, err := b.preProcessLayers(out, plan)
	if err != nil {
		return nil, false, err
	}

	needFlush := out.hasClientLayers()
	if b.onPrepareComplete != nil {
		start := b.now()
		b.onPrepareComplete(out.framebuffer, PrepareCompleteParam{
			ScreenID:             out.screenID,
			FrameNumber:          plan.FrameNumber,
			NeedFlushFramebuffer: needFlush,
			Layers:               out.sortedLayerInfos(),
		})
		b.checkBudget("prepare-complete", out.screenID, start)
	}

	var fence *Fence
	if out.virtual {
		fence = NewSignaledFence(b.now().UnixNano())
	} else {
		if needFlush {
			if err := b.device.SetScreenClientBuffer(out.screenID, out.framebuffer, damageOf(plan)); err != nil {
				return nil, false, deviceError("SetScreenClientBuffer", err)
			}
		}
		fence, err = b.device.Commit(out.screenID)
		if err != nil {
			return nil, false, deviceError("Commit", err)
		}
	}

	if ts := fence.Timestamp(); ts != 0 {
		out.recordCompositionTime(ts)
	} else {
		out.recordCompositionTime(b.now().UnixNano())
	}

	return fence, fallback, nil
}

// applyLayers creates or updates a layer per planned surface and destroys
// layers whose surface is no longer planned.
func (b *Backend) applyLayers(out *Output, plan models.FramePlan) error {
	for _, l := range out.layers {
		l.touched = false
	}

	compositionType := models.CompositionClient
	if plan.Mode == models.CompositionOffline {
		compositionType = models.CompositionDevice
	}

	for _, sp := range plan.Surfaces {
		info := models.LayerInfo{
			SurfaceID:       sp.SurfaceID,
			ZOrder:          sp.ZOrder,
			Rect:            sp.Rect,
			Transform:       sp.Transform,
			Visible:         true,
			Buffer:          sp.Buffer,
			Dirty:           sp.Dirty,
			CompositionType: compositionType,
		}

		l, ok := out.layers[sp.SurfaceID]
		if !ok {
			id, err := b.createLayer(out, info)
			if err != nil {
				return err
			}
			l = &Layer{id: id}
			out.layers[sp.SurfaceID] = l
		} else if !out.virtual {
			if err := b.device.SetLayerInfo(out.screenID, l.id, info); err != nil {
				return deviceError("SetLayerInfo", err)
			}
		}
		l.info = info
		l.touched = true
	}

	for surfaceID, l := range out.layers {
		if l.touched {
			continue
		}
		if !out.virtual {
			if err := b.device.DestroyLayer(out.screenID, l.id); err != nil {
				return deviceError("DestroyLayer", err)
			}
		}
		delete(out.layers, surfaceID)
	}

	return nil
}

func (b *Backend) createLayer(out *Output, info models.LayerInfo) (models.LayerID, error) {
	if out.virtual {
		out.nextLayerID++
		return out.nextLayerID, nil
	}
	id, err := b.device.CreateLayer(out.screenID, info)
	if err != nil {
		return 0, deviceError("CreateLayer", err)
	}
	return id, nil
}

// preProcessLayers settles the composition type of every layer. It reports
// whether an offline plan fell back to client composition.
func (b *Backend) preProcessLayers(out *Output, plan models.FramePlan) (bool, error) {
	if out.virtual || plan.Mode != models.CompositionOffline {
		return false, nil
	}

	if b.cfg.DirectClientComposition && out.capacity > 0 && len(out.layers) > out.capacity {
		for _, l := range out.layers {
			l.info.CompositionType = models.CompositionClient
		}
		b.logger.Debug().Uint64("screen_id", uint64(out.screenID)).Int("layers", len(out.layers)).
			Int("capacity", out.capacity).Msg("direct client composition")
		return true, nil
	}

	changes, err := b.device.GetScreenCompChange(out.screenID)
	if err != nil {
		return false, deviceError("GetScreenCompChange", err)
	}

	fallback := false
	for layerID, compositionType := range changes {
		l := out.layerByID(layerID)
		if l == nil {
			continue
		}
		if compositionType == models.CompositionClient && l.info.CompositionType == models.CompositionDevice {
			fallback = true
		}
		l.info.CompositionType = compositionType
	}

	return fallback, nil
}

func damageOf(plan models.FramePlan) []models.Rect {
	var damage []models.Rect
	for _, sp := range plan.Surfaces {
		for _, r := range sp.Dirty {
			damage = append(damage, models.Rect{X: sp.Rect.X + r.X, Y: sp.Rect.Y + r.Y, W: r.W, H: r.H})
		}
	}
	return damage
}

// deviceError makes sure every device failure classifies as
// models.ErrHardwareUnavailable.
func deviceError(call string, err error) error {
	if errors.Is(err, models.ErrHardwareUnavailable) {
		return fmt.Errorf("%s: %w", call, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDeviceAPIFailed, call, err)
}
