// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-compositor/internal/adapter"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

type tab int

const (
	tabScreens tab = iota
	tabVSync
	tabDFX
	tabCount
)

var tabTitles = [tabCount]string{"Screens", "VSync", "DFX"}

const statusTimeout = 2 * time.Second

// monitorModel is the single page of the monitor. Every server call runs in
// a tea.Cmd; results come back as messages.
type monitorModel struct {
	ctx     context.Context
	server  adapter.ServerAdapter
	events  <-chan models.VSyncEvent
	refresh time.Duration
	build   models.AppBuildInfo

	active  tab
	screens []models.ScreenInfo
	table   table.Model
	spinner spinner.Model
	loading bool

	vsync      models.VSyncStatus
	lastEvent  models.VSyncEvent
	eventCount uint64
	synthesis  models.LayerSynthesisModeInfo
	dirty      []models.GpuDirtyRegionInfo

	form          *screenForm
	confirmRemove *models.ScreenInfo

	serverBuild   models.AppBuildInfo
	showBuildInfo bool

	status     string
	err        error
	quitByUser bool
}

func newMonitorModel(ctx context.Context, server adapter.ServerAdapter, events <-chan models.VSyncEvent,
	refresh time.Duration, build models.AppBuildInfo) monitorModel {
	t := table.New(
		table.WithColumns(screenColumns),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	t.SetStyles(table.DefaultStyles())

	s := spinner.New()
	s.Spinner = spinner.Dot

	return monitorModel{
		ctx:     ctx,
		server:  server,
		events:  events,
		refresh: refresh,
		build:   build,
		table:   t,
		spinner: s,
		loading: true,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdSnapshot(), m.cmdServerVersion(), m.cmdWaitVSync())
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case snapshotMsg:
		m.loading = false
		m.err = msg.err
		m.screens = msg.screens
		m.table.SetRows(screenRows(msg.screens))
		m.vsync = msg.vsync
		m.synthesis = msg.synthesis
		m.dirty = msg.dirty
		return m, m.cmdScheduleRefresh()

	case refreshTickMsg:
		return m, m.cmdSnapshot()

	case vsyncEventMsg:
		if msg.closed {
			m.events = nil
			return m, nil
		}
		m.lastEvent = msg.event
		m.eventCount++
		return m, m.cmdWaitVSync()

	case models.AppBuildInfo:
		m.serverBuild = msg
		return m, nil

	case screenCreatedMsg:
		if msg.err != nil {
			if m.form != nil {
				m.form.err = errors.New(humanizeServerError(msg.err))
			}
			return m, nil
		}
		m.form = nil
		clearCmd := m.setStatus(fmt.Sprintf("virtual screen %d created", uint64(msg.id)))
		return m, tea.Batch(clearCmd, m.cmdSnapshot())

	case screenRemovedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		clearCmd := m.setStatus(fmt.Sprintf("virtual screen %d removed", uint64(msg.id)))
		return m, tea.Batch(clearCmd, m.cmdSnapshot())

	case checkpointMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		clearCmd := m.setStatus(fmt.Sprintf("checkpoint %d saved (%d frames)", msg.checkpoint.ID, msg.checkpoint.Synthesis.TotalFrames))
		return m, tea.Batch(clearCmd, m.cmdSnapshot())

	case copiedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		clearCmd := m.setStatus("copied " + msg.text)
		return m, clearCmd

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.form != nil {
		cmd, _ := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m monitorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitByUser = true
		return m, tea.Quit
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	if m.form != nil {
		if key.Matches(msg, keys.esc) {
			m.form = nil
			return m, nil
		}
		cmd, submitted := m.form.update(msg)
		if !submitted {
			return m, cmd
		}
		req, err := m.form.request()
		if err != nil {
			m.form.err = err
			return m, nil
		}
		m.form.err = nil
		return m, m.cmdCreateScreen(req)
	}

	if m.confirmRemove != nil {
		target := *m.confirmRemove
		m.confirmRemove = nil
		if key.Matches(msg, keys.yes) {
			return m, m.cmdRemoveScreen(target.ScreenID)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case key.Matches(msg, keys.tab):
		m.active = (m.active + 1) % tabCount
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.active = (m.active + tabCount - 1) % tabCount
		return m, nil
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdSnapshot())
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
		return m, nil
	case key.Matches(msg, keys.checkpoint):
		return m, m.cmdCheckpoint()
	}

	if m.active != tabScreens {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.newScreen):
		m.form = newScreenForm()
		return m, nil
	case key.Matches(msg, keys.remove):
		screen, err := m.selectedScreen()
		if err == nil && !screen.Virtual {
			err = ErrNotVirtual
		}
		if err != nil {
			m.err = err
			return m, nil
		}
		m.confirmRemove = &screen
		return m, nil
	case key.Matches(msg, keys.copy):
		screen, err := m.selectedScreen()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, cmdCopy(strconv.FormatUint(uint64(screen.ScreenID), 10))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m monitorModel) selectedScreen() (models.ScreenInfo, error) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.screens) {
		return models.ScreenInfo{}, ErrNothingSelected
	}
	return m.screens[cursor], nil
}

func (m monitorModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.build, m.serverBuild)
	}
	if m.form != nil {
		return m.form.view()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.active {
	case tabScreens:
		b.WriteString(m.table.View())
		if m.confirmRemove != nil {
			b.WriteString("\n\n")
			b.WriteString(overlayBoxStyle.Render(fmt.Sprintf("Remove virtual screen %d (%s)? y/n",
				uint64(m.confirmRemove.ScreenID), m.confirmRemove.Name)))
		}
	case tabVSync:
		b.WriteString(renderVSync(m.vsync, m.lastEvent, m.eventCount))
	case tabDFX:
		b.WriteString(renderSynthesis(m.synthesis))
		b.WriteString("\n\n")
		b.WriteString(renderDirtyRegions(m.dirty))
	}

	b.WriteString("\n\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " loading...")
	case m.err != nil:
		b.WriteString(errorStyle.Render(humanizeServerError(m.err)))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}

	return renderPage("COMPOSITOR MONITOR", b.String(), m.hotKeys())
}

func (m monitorModel) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for i, title := range tabTitles {
		if tab(i) == m.active {
			parts = append(parts, activeTabStyle.Render(title))
		} else {
			parts = append(parts, tabStyle.Render(title))
		}
	}
	return strings.Join(parts, "  |  ")
}

func (m monitorModel) hotKeys() string {
	common := "tab: switch • r: refresh • c: checkpoint • v: build info"
	if m.active == tabScreens {
		return "n: new virtual screen • d: remove • y: copy id • " + common
	}
	return common
}

func (m *monitorModel) setStatus(status string) tea.Cmd {
	m.status = status
	m.err = nil
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m monitorModel) cmdSnapshot() tea.Cmd {
	ctx, server := m.ctx, m.server
	return func() tea.Msg {
		var (
			msg  snapshotMsg
			errs []error
			err  error
		)

		if msg.screens, err = server.ListScreens(ctx); err != nil {
			errs = append(errs, err)
		}
		if msg.vsync, err = server.VSyncStatus(ctx); err != nil {
			errs = append(errs, err)
		}
		if msg.synthesis, err = server.Synthesis(ctx); err != nil {
			errs = append(errs, err)
		}
		if msg.dirty, err = server.DirtyRegions(ctx); err != nil {
			errs = append(errs, err)
		}

		msg.err = errors.Join(errs...)
		return msg
	}
}

func (m monitorModel) cmdScheduleRefresh() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m monitorModel) cmdServerVersion() tea.Cmd {
	ctx, server := m.ctx, m.server
	return func() tea.Msg {
		info, err := server.Version(ctx)
		if err != nil {
			return nil
		}
		return info
	}
}

// cmdWaitVSync reads one event from the monitor's own VSync connection.
func (m monitorModel) cmdWaitVSync() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		return vsyncEventMsg{event: ev, closed: !ok}
	}
}

func (m monitorModel) cmdCreateScreen(req models.VirtualScreenRequest) tea.Cmd {
	ctx, server := m.ctx, m.server
	return func() tea.Msg {
		id, err := server.CreateVirtualScreen(ctx, req)
		return screenCreatedMsg{id: id, err: err}
	}
}

func (m monitorModel) cmdRemoveScreen(id models.ScreenID) tea.Cmd {
	ctx, server := m.ctx, m.server
	return func() tea.Msg {
		return screenRemovedMsg{id: id, err: server.RemoveVirtualScreen(ctx, id)}
	}
}

func (m monitorModel) cmdCheckpoint() tea.Cmd {
	ctx, server := m.ctx, m.server
	return func() tea.Msg {
		cp, err := server.Checkpoint(ctx)
		return checkpointMsg{checkpoint: cp, err: err}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{text: text}
	}
}
