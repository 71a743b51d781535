// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-compositor/internal/adapter"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/mock"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeMonitor struct {
	events <-chan models.VSyncEvent
	runs   int
}

func (f *fakeMonitor) Run(_ context.Context, events <-chan models.VSyncEvent) error {
	f.events = events
	f.runs++
	return nil
}

var _ Client = (*App)(nil)

func TestNewApp_NilDependencies(t *testing.T) {
	_, err := NewApp(nil, nil, &fakeMonitor{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNilDependency)
}

func TestRun_SubscribesToVSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	vsync := mock.NewMockVSyncAdapter(ctrl)
	monitor := &fakeMonitor{}

	events := make(chan models.VSyncEvent)
	gomock.InOrder(
		server.EXPECT().RequestToken(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req models.TokenRequest) error {
				assert.Equal(t, monitorCapabilities, req.Capabilities)
				return nil
			}),
		vsync.EXPECT().Connect(gomock.Any(), monitorConnectionName).Return(models.ConnectionID(1), nil),
		vsync.EXPECT().SetRate(gomock.Any(), int32(monitorVSyncRate), true).Return(nil),
		vsync.EXPECT().Events(gomock.Any()).Return((<-chan models.VSyncEvent)(events), nil),
	)

	app, err := NewApp(server, vsync, monitor, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, 1, monitor.runs)
	assert.NotNil(t, monitor.events)
}

func TestRun_VSyncFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	vsync := mock.NewMockVSyncAdapter(ctrl)
	monitor := &fakeMonitor{}

	server.EXPECT().RequestToken(gomock.Any(), gomock.Any()).Return(nil)
	vsync.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(models.ConnectionID(0), adapter.ErrTooManyRequests)

	app, err := NewApp(server, vsync, monitor, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, 1, monitor.runs)
	assert.Nil(t, monitor.events)
}

func TestRun_TokenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	monitor := &fakeMonitor{}

	server.EXPECT().RequestToken(gomock.Any(), gomock.Any()).Return(adapter.ErrUnauthorized)

	app, err := NewApp(server, nil, monitor, logger.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.True(t, errors.Is(err, adapter.ErrUnauthorized))
	assert.Zero(t, monitor.runs)
}
