// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-compositor/internal/adapter"
	"github.com/MKhiriev/go-compositor/internal/mock"
	"github.com/MKhiriev/go-compositor/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testScreens = []models.ScreenInfo{
	{ScreenID: 0, Name: "sim-0", Width: 1920, Height: 1080, State: models.ScreenActive, Layers: 2, LayerCapacity: 4},
	{ScreenID: 1 << 32, Name: "FUZZ", Width: 640, Height: 480, Virtual: true, State: models.ScreenActive},
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (monitorModel, *mock.MockServerAdapter) {
	t.Helper()
	server := mock.NewMockServerAdapter(gomock.NewController(t))
	m := newMonitorModel(context.Background(), server, nil, time.Second, models.NewAppBuildInfo("1.0", "", ""))
	return m, server
}

func update(t *testing.T, m monitorModel, msg tea.Msg) (monitorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(monitorModel)
	require.True(t, ok)
	return result, cmd
}

func loaded(t *testing.T, m monitorModel) monitorModel {
	t.Helper()
	m, _ = update(t, m, snapshotMsg{
		screens:   testScreens,
		synthesis: models.LayerSynthesisModeInfo{UniformFrames: 3, OfflineFrames: 1, TotalFrames: 4},
	})
	return m
}

func TestSnapshot_FillsTable(t *testing.T) {
	m, server := newTestModel(t)

	server.EXPECT().ListScreens(gomock.Any()).Return(testScreens, nil)
	server.EXPECT().VSyncStatus(gomock.Any()).Return(models.VSyncStatus{RefreshRate: 60}, nil)
	server.EXPECT().Synthesis(gomock.Any()).Return(models.LayerSynthesisModeInfo{}, nil)
	server.EXPECT().DirtyRegions(gomock.Any()).Return(nil, errors.New("boom"))

	msg := m.cmdSnapshot()()
	snapshot, ok := msg.(snapshotMsg)
	require.True(t, ok)
	assert.Error(t, snapshot.err)

	m, cmd := update(t, m, snapshot)
	assert.NotNil(t, cmd, "next refresh is scheduled")
	assert.False(t, m.loading)
	assert.Equal(t, uint32(60), m.vsync.RefreshRate)
	assert.Len(t, m.table.Rows(), 2)
	assert.Contains(t, m.View(), "boom")
}

func TestTabs_Cycle(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabVSync, m.active)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabDFX, m.active)
	assert.Contains(t, m.View(), "uniform 3 (75.0%)")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabVSync, m.active)
}

func TestRemove_PhysicalScreenRefused(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	m, cmd := update(t, m, runeKey("d"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.confirmRemove)
	assert.ErrorIs(t, m.err, ErrNotVirtual)
}

func TestRemove_VirtualScreenConfirmed(t *testing.T) {
	m, server := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, runeKey("d"))
	require.NotNil(t, m.confirmRemove)
	assert.Equal(t, testScreens[1].ScreenID, m.confirmRemove.ScreenID)

	m, cmd := update(t, m, runeKey("y"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.confirmRemove)

	server.EXPECT().RemoveVirtualScreen(gomock.Any(), testScreens[1].ScreenID).Return(nil)
	msg := cmd()
	assert.Equal(t, screenRemovedMsg{id: testScreens[1].ScreenID}, msg)
}

func TestRemove_Cancelled(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, runeKey("d"))
	m, cmd := update(t, m, runeKey("n"))

	assert.Nil(t, cmd)
	assert.Nil(t, m.confirmRemove)
}

func TestCreateScreen_Form(t *testing.T) {
	m, server := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, runeKey("n"))
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "NEW VIRTUAL SCREEN")

	// walk to the last field and submit the defaults
	var cmd tea.Cmd
	for range fieldCount {
		m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	require.NotNil(t, cmd)

	server.EXPECT().CreateVirtualScreen(gomock.Any(), models.VirtualScreenRequest{Name: "virtual", Width: 640, Height: 480}).
		Return(models.ScreenID(7), nil)
	msg := cmd()
	assert.Equal(t, screenCreatedMsg{id: 7}, msg)

	m, _ = update(t, m, msg)
	assert.Nil(t, m.form)
	assert.Equal(t, "virtual screen 7 created", m.status)
}

func TestCreateScreen_ServerRejects(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)
	m, _ = update(t, m, runeKey("n"))

	m, _ = update(t, m, screenCreatedMsg{err: adapter.ErrServiceUnavailable})
	require.NotNil(t, m.form)
	assert.EqualError(t, m.form.err, "screen hardware is unavailable")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.form)
}

func TestScreenForm_Validation(t *testing.T) {
	tests := []struct {
		name    string
		values  [fieldCount]string
		want    models.VirtualScreenRequest
		wantErr error
	}{
		{
			name:   "valid",
			values: [fieldCount]string{"FUZZ", "640", "480", "9"},
			want:   models.VirtualScreenRequest{Name: "FUZZ", Width: 640, Height: 480, Producer: 9},
		},
		{name: "empty name", values: [fieldCount]string{" ", "640", "480", ""}, wantErr: ErrInvalidName},
		{name: "zero width", values: [fieldCount]string{"FUZZ", "0", "480", ""}, wantErr: ErrInvalidSize},
		{name: "negative height", values: [fieldCount]string{"FUZZ", "640", "-1", ""}, wantErr: ErrInvalidSize},
		{name: "not a number", values: [fieldCount]string{"FUZZ", "wide", "480", ""}, wantErr: ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScreenForm()
			for i, v := range tt.values {
				f.inputs[i].SetValue(v)
			}

			got, err := f.request()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVSyncEvents(t *testing.T) {
	events := make(chan models.VSyncEvent, 1)
	server := mock.NewMockServerAdapter(gomock.NewController(t))
	m := newMonitorModel(context.Background(), server, events, time.Second, models.AppBuildInfo{})

	events <- models.VSyncEvent{Timestamp: 10, FrameCount: 3}
	msg := m.cmdWaitVSync()()
	m, cmd := update(t, m, msg)
	assert.NotNil(t, cmd, "waits for the next event")
	assert.Equal(t, uint64(1), m.eventCount)
	assert.Equal(t, uint64(3), m.lastEvent.FrameCount)

	close(events)
	m, cmd = update(t, m, m.cmdWaitVSync()())
	assert.Nil(t, cmd)
	assert.Nil(t, m.events)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, runeKey("q"))
	assert.True(t, m.quitByUser)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPercent_ZeroTotal(t *testing.T) {
	assert.Zero(t, percent(5, 0))
	assert.InDelta(t, 50.0, percent(1, 2), 0.001)
}
