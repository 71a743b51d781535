// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-compositor/internal/adapter"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
)

const (
	monitorConnectionName = "monitor"
	// monitorVSyncRate asks for one event per this many hardware ticks so
	// the monitor redraws about once a second at 60 Hz.
	monitorVSyncRate = 60
)

var ErrNilDependency = errors.New("client dependency is nil")

// monitorCapabilities are requested for the operator's token.
var monitorCapabilities = []models.Capability{
	models.CapVSync,
	models.CapTransactions,
	models.CapScreenAdmin,
}

// Monitor is the UI the app hands control to.
type Monitor interface {
	Run(ctx context.Context, events <-chan models.VSyncEvent) error
}

type App struct {
	server  adapter.ServerAdapter
	vsync   adapter.VSyncAdapter
	monitor Monitor
	pid     int32
	logger  *logger.Logger
}

// NewApp builds the client. vsync may be nil, in which case the monitor runs
// without live ticks.
func NewApp(server adapter.ServerAdapter, vsync adapter.VSyncAdapter, monitor Monitor, log *logger.Logger) (*App, error) {
	if server == nil || monitor == nil {
		return nil, ErrNilDependency
	}
	return &App{
		server:  server,
		vsync:   vsync,
		monitor: monitor,
		pid:     int32(os.Getpid()),
		logger:  log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := a.server.RequestToken(ctx, models.TokenRequest{Pid: a.pid, Capabilities: monitorCapabilities}); err != nil {
		return fmt.Errorf("request capability token: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := a.subscribe(ctx)
	if err != nil {
		// the monitor is still useful without live ticks
		a.logger.Warn().Err(err).Msg("vsync subscription failed")
	}

	return a.monitor.Run(ctx, events)
}

// subscribe opens the monitor's VSync connection with continuous delivery.
func (a *App) subscribe(ctx context.Context) (<-chan models.VSyncEvent, error) {
	if a.vsync == nil {
		return nil, nil
	}

	if _, err := a.vsync.Connect(ctx, monitorConnectionName); err != nil {
		return nil, err
	}
	if err := a.vsync.SetRate(ctx, monitorVSyncRate, true); err != nil {
		return nil, err
	}
	return a.vsync.Events(ctx)
}
