// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/composer"
	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/MKhiriev/go-compositor/internal/mock"
	"github.com/MKhiriev/go-compositor/internal/store"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	admin  = models.Caller{Pid: 1, Capabilities: []models.Capability{models.CapScreenAdmin}}
	client = models.Caller{Pid: 42, Capabilities: []models.Capability{models.CapVSync, models.CapTransactions}}
)

// inlineExecutor runs every submitted function on the calling goroutine.
func inlineExecutor(ctrl *gomock.Controller) *mock.MockExecutor {
	exec := mock.NewMockExecutor(ctrl)
	exec.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fn func()) error {
		fn()
		return nil
	}).AnyTimes()
	return exec
}

func stoppedExecutor(ctrl *gomock.Controller) *mock.MockExecutor {
	exec := mock.NewMockExecutor(ctrl)
	exec.EXPECT().Do(gomock.Any(), gomock.Any()).Return(backend.ErrExecutorStopped).AnyTimes()
	return exec
}

func newSimBackend(t *testing.T) *backend.Backend {
	t.Helper()
	b, err := backend.NewBackend(backend.NewSimDevice(logger.Nop()), backend.Config{}, logger.Nop())
	require.NoError(t, err)
	return b
}

func surfaceTxn(version uint64, surface models.SurfaceID) models.Transaction {
	return models.Transaction{
		Version: version,
		Commands: []models.Command{{
			Type:      models.CommandCreateSurface,
			SurfaceID: surface,
			ScreenID:  1,
			Rect:      models.Rect{W: 10, H: 10},
			Visible:   true,
		}},
	}
}

// ─────────────────────────────────────────────
// AuthService
// ─────────────────────────────────────────────

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	svc, err := NewAuthService(config.App{
		TokenSecret:   "token-secret",
		TokenSalt:     "salt",
		TokenIssuer:   "compositor-test",
		TokenDuration: time.Minute,
		ClientSecret:  "client-secret",
	}, logger.Nop())
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_NoSecret(t *testing.T) {
	svc, err := NewAuthService(config.App{}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrNoSigningSecret)
}

func TestAuthService_CreateAndParseToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.CreateToken(ctx, "client-secret", models.TokenRequest{
		Pid:          42,
		Capabilities: []models.Capability{models.CapVSync, models.CapTransactions},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	caller, err := svc.ParseToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), caller.Pid)
	assert.True(t, caller.Has(models.CapTransactions))
	assert.False(t, caller.Has(models.CapScreenAdmin))
}

func TestAuthService_CreateToken_Errors(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		secret string
		req    models.TokenRequest
		want   error
	}{
		{
			name:   "wrong client secret",
			secret: "nope",
			req:    models.TokenRequest{Pid: 1, Capabilities: []models.Capability{models.CapVSync}},
			want:   ErrInvalidClientSecret,
		},
		{
			name:   "no pid",
			secret: "client-secret",
			req:    models.TokenRequest{Capabilities: []models.Capability{models.CapVSync}},
			want:   ErrInvalidDataProvided,
		},
		{
			name:   "no capabilities",
			secret: "client-secret",
			req:    models.TokenRequest{Pid: 1},
			want:   ErrInvalidDataProvided,
		},
		{
			name:   "unknown capability",
			secret: "client-secret",
			req:    models.TokenRequest{Pid: 1, Capabilities: []models.Capability{"root"}},
			want:   ErrInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateToken(ctx, tt.secret, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ─────────────────────────────────────────────
// TransactionService
// ─────────────────────────────────────────────

func newTestTransactionService() (TransactionService, *transaction.Synchronizer) {
	sync := transaction.NewSynchronizer(time.Second, 4, logger.Nop())
	m := metrics.New()
	return NewTransactionValidationService(m).Wrap(NewTransactionService(sync, m, logger.Nop())), sync
}

func TestTransactionService_Submit(t *testing.T) {
	svc, sync := newTestTransactionService()
	ctx := context.Background()

	accepted, err := svc.Submit(ctx, client, surfaceTxn(1, 10))
	require.NoError(t, err)
	assert.Equal(t, models.TransactionAccepted{Pid: 42, Version: 1}, accepted)
	assert.Equal(t, map[int32]int{42: 1}, sync.Pending())

	accepted, err = svc.Submit(ctx, client, surfaceTxn(1, 11))
	require.NoError(t, err, "stale transactions are acknowledged")
	assert.True(t, accepted.Dropped)
	assert.Equal(t, map[int32]int{42: 1}, sync.Pending())
}

func TestTransactionService_Submit_Rejected(t *testing.T) {
	svc, sync := newTestTransactionService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, admin, surfaceTxn(1, 10))
	assert.ErrorIs(t, err, ErrPermissionDenied, "caller without the transactions capability")

	foreign := surfaceTxn(1, 10)
	foreign.Pid = 7
	_, err = svc.Submit(ctx, client, foreign)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, err, transaction.ErrPidMismatch)

	_, err = svc.Submit(ctx, client, models.Transaction{Version: 1})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	assert.Empty(t, sync.Pending())
}

func TestTransactionService_Submit_QueueFull(t *testing.T) {
	svc, _ := newTestTransactionService()
	ctx := context.Background()

	for v := uint64(1); v <= 4; v++ {
		_, err := svc.Submit(ctx, client, surfaceTxn(v, models.SurfaceID(v)))
		require.NoError(t, err)
	}

	_, err := svc.Submit(ctx, client, surfaceTxn(5, 5))
	assert.ErrorIs(t, err, models.ErrResourceExhausted)
}

func TestTransactionService_SyncBarrier(t *testing.T) {
	svc, sync := newTestTransactionService()
	ctx := context.Background()

	err := svc.OpenSync(ctx, client, models.SyncTransactionRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	err = svc.OpenSync(ctx, client, models.SyncTransactionRequest{SyncID: 3, Participants: []int32{0}})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	err = svc.OpenSync(ctx, admin, models.SyncTransactionRequest{SyncID: 3, Participants: []int32{42}})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.OpenSync(ctx, client, models.SyncTransactionRequest{SyncID: 3, Participants: []int32{42}}))
	assert.Equal(t, 1, sync.OpenBarriers())

	err = svc.OpenSync(ctx, client, models.SyncTransactionRequest{SyncID: 3, Participants: []int32{42}})
	assert.ErrorIs(t, err, transaction.ErrBarrierExists)

	require.NoError(t, svc.CloseSync(ctx, client, 3))

	err = svc.CloseSync(ctx, client, 99)
	assert.ErrorIs(t, err, models.ErrStaleState)
}

// ─────────────────────────────────────────────
// ScreenService
// ─────────────────────────────────────────────

func TestScreenService_VirtualScreenLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewScreenService(newSimBackend(t), inlineExecutor(ctrl), logger.Nop())
	ctx := context.Background()

	id, err := svc.CreateVirtualScreen(ctx, admin, models.VirtualScreenRequest{Name: "cast", Width: 640, Height: 480, Producer: 9})
	require.NoError(t, err)
	assert.NotZero(t, id)

	screens, err := svc.ListScreens(ctx)
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.Equal(t, id, screens[0].ScreenID)
	assert.True(t, screens[0].Virtual)

	require.NoError(t, svc.RemoveVirtualScreen(ctx, admin, id))
	require.NoError(t, svc.RemoveVirtualScreen(ctx, admin, id), "removal is idempotent")

	screens, err = svc.ListScreens(ctx)
	require.NoError(t, err)
	assert.Empty(t, screens)
}

func TestScreenService_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	svc := NewScreenService(newSimBackend(t), inlineExecutor(ctrl), logger.Nop())

	_, err := svc.CreateVirtualScreen(ctx, client, models.VirtualScreenRequest{Width: 1, Height: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.ErrorIs(t, svc.RemoveVirtualScreen(ctx, client, 1), ErrPermissionDenied)

	_, err = svc.CreateVirtualScreen(ctx, admin, models.VirtualScreenRequest{Width: 0, Height: 10})
	assert.ErrorIs(t, err, backend.ErrInvalidScreenSize)

	stopped := NewScreenService(newSimBackend(t), stoppedExecutor(ctrl), logger.Nop())

	_, err = stopped.CreateVirtualScreen(ctx, admin, models.VirtualScreenRequest{Width: 1, Height: 1})
	assert.ErrorIs(t, err, backend.ErrExecutorStopped)

	_, err = stopped.ListScreens(ctx)
	assert.ErrorIs(t, err, models.ErrHardwareUnavailable)
}

// ─────────────────────────────────────────────
// DFXService
// ─────────────────────────────────────────────

func TestDFXService_Checkpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockDFXRepository(ctrl)
	engine := composer.NewEngine(logger.Nop())
	svc := NewDFXService(engine, inlineExecutor(ctrl), repo, logger.Nop())

	repo.EXPECT().SaveCheckpoint(gomock.Any(), gomock.Any()).Return(int64(7), nil)

	cp, err := svc.Checkpoint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), cp.ID)
	assert.False(t, cp.CreatedAt.IsZero())
	assert.Equal(t, models.LayerSynthesisModeInfo{}, svc.Synthesis(context.Background()))
}

func TestDFXService_Checkpoint_SaveFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockDFXRepository(ctrl)
	svc := NewDFXService(composer.NewEngine(logger.Nop()), inlineExecutor(ctrl), repo, logger.Nop())

	repo.EXPECT().SaveCheckpoint(gomock.Any(), gomock.Any()).Return(int64(0), store.ErrCheckpointNotSaved)

	_, err := svc.Checkpoint(context.Background())
	assert.ErrorIs(t, err, store.ErrCheckpointNotSaved)
}

func TestDFXService_Checkpoint_LoopStopped(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockDFXRepository(ctrl)
	svc := NewDFXService(composer.NewEngine(logger.Nop()), stoppedExecutor(ctrl), repo, logger.Nop())

	_, err := svc.Checkpoint(context.Background())
	assert.ErrorIs(t, err, backend.ErrExecutorStopped)
}

func TestDFXService_Checkpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockDFXRepository(ctrl)
	svc := NewDFXService(composer.NewEngine(logger.Nop()), inlineExecutor(ctrl), repo, logger.Nop())
	ctx := context.Background()

	want := []models.DFXCheckpoint{{ID: 2}, {ID: 1}}
	repo.EXPECT().ListCheckpoints(gomock.Any(), DefaultCheckpointLimit).Return(want, nil)
	repo.EXPECT().ListCheckpoints(gomock.Any(), 5).Return(nil, errors.New("boom"))

	got, err := svc.Checkpoints(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Checkpoints(ctx, 5)
	assert.Error(t, err)

	_, err = svc.Checkpoints(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// VSyncService
// ─────────────────────────────────────────────

func newTestVSyncService(t *testing.T) (VSyncService, *vsync.Distributor) {
	t.Helper()
	gen, err := vsync.NewGenerator(60, logger.Nop())
	require.NoError(t, err)
	dist := vsync.NewDistributor(4, logger.Nop())
	stub := vsync.NewStub(dist, gen, logger.Nop())
	return NewVSyncService(dist, stub, gen, logger.Nop()), dist
}

func TestVSyncService_ConnectionLifecycle(t *testing.T) {
	svc, dist := newTestVSyncService(t)
	ctx := context.Background()

	_, err := svc.CreateConnection(ctx, admin, "ui")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	id, err := svc.CreateConnection(ctx, client, "ui")
	require.NoError(t, err)

	conn, err := svc.Subscribe(ctx, client, id)
	require.NoError(t, err)
	assert.Equal(t, int32(42), conn.Pid())

	_, err = svc.Subscribe(ctx, models.Caller{Pid: 7}, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	status := svc.Status(ctx)
	assert.Equal(t, uint32(60), status.RefreshRate)
	assert.Len(t, status.Connections, 1)

	reply := svc.Transact(ctx, client, vsync.Request{
		Descriptor:   vsync.InterfaceDescriptor,
		ConnectionID: id,
		Code:         vsync.CodeRequestNextVSync,
	})
	assert.Equal(t, vsync.ReplyOK, reply.Code)

	svc.RemoveConnection(ctx, id)
	svc.RemoveConnection(ctx, id)
	assert.Equal(t, 0, dist.Len())

	_, err = svc.Subscribe(ctx, client, id)
	assert.ErrorIs(t, err, vsync.ErrConnectionNotFound)
}

// ─────────────────────────────────────────────
// LifecycleService
// ─────────────────────────────────────────────

func TestLifecycleService_PeerLost(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.Nop()
	dist := vsync.NewDistributor(4, log)
	sync := transaction.NewSynchronizer(time.Second, 4, log)
	engine := composer.NewEngine(log)
	svc := NewLifecycleService(dist, sync, engine, inlineExecutor(ctrl), log)
	ctx := context.Background()

	_, err := dist.CreateConnection(42, "ui")
	require.NoError(t, err)
	_, err = dist.CreateConnection(43, "other")
	require.NoError(t, err)
	require.NoError(t, sync.Submit(42, surfaceTxn(1, 10)))

	create := surfaceTxn(1, 11).Commands[0]
	create.Pid = 42
	applied, _ := engine.Apply([]models.Command{create})
	require.Equal(t, 1, applied)

	_, err = svc.PeerLost(ctx, models.Caller{Pid: 43}, 42)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.PeerLost(ctx, admin, 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	report, err := svc.PeerLost(ctx, client, 42)
	require.NoError(t, err)
	assert.Equal(t, models.PeerLostReport{Pid: 42, Connections: 1, Transactions: 1, Surfaces: 1}, report)
	assert.Equal(t, 1, dist.Len())
	assert.Equal(t, 0, engine.SurfaceCount())
}

// ─────────────────────────────────────────────
// NewServices
// ─────────────────────────────────────────────

func TestNewServices_NilComponent(t *testing.T) {
	svcs, err := NewServices(Components{}, &store.Storages{}, config.StructuredConfig{}, models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svcs)
	assert.ErrorIs(t, err, ErrNilDependency)
}
