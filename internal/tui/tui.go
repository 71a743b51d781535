// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the operator's terminal monitor for the compositor: screens,
// VSync connections and composition statistics, refreshed on an interval.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-compositor/internal/adapter"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultRefresh = time.Second

type TUI struct {
	server  adapter.ServerAdapter
	refresh time.Duration
	build   models.AppBuildInfo
	logger  *logger.Logger
}

func New(server adapter.ServerAdapter, refresh time.Duration, build models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if server == nil {
		return nil, ErrNilAdapter
	}
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	return &TUI{server: server, refresh: refresh, build: build, logger: log}, nil
}

// Run shows the monitor until the user quits or ctx is done. events may be
// nil when no VSync connection could be opened.
func (t *TUI) Run(ctx context.Context, events <-chan models.VSyncEvent) error {
	model := newMonitorModel(ctx, t.server, events, t.refresh, t.build)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := finalModel.(monitorModel); ok && result.quitByUser {
		t.logger.Info().Msg("monitor closed by user")
	}
	return nil
}
