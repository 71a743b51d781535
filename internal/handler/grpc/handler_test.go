// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/composer"
	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/MKhiriev/go-compositor/internal/mock"
	"github.com/MKhiriev/go-compositor/internal/service"
	"github.com/MKhiriev/go-compositor/internal/store"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type testVSync struct {
	client      *VSyncConnectionClient
	services    *service.Services
	distributor *vsync.Distributor
}

func newTestVSync(t *testing.T) *testVSync {
	t.Helper()
	log := logger.Nop()

	gen, err := vsync.NewGenerator(60, log)
	require.NoError(t, err)
	dist := vsync.NewDistributor(8, log)
	be, err := backend.NewBackend(backend.NewSimDevice(log), backend.Config{}, log)
	require.NoError(t, err)

	services, err := service.NewServices(service.Components{
		Generator:    gen,
		Distributor:  dist,
		Stub:         vsync.NewStub(dist, gen, log),
		Synchronizer: transaction.NewSynchronizer(time.Second, 8, log),
		Engine:       composer.NewEngine(log),
		Backend:      be,
		Executor:     mock.NewMockExecutor(gomock.NewController(t)),
		Metrics:      metrics.New(),
	}, &store.Storages{DFXRepository: store.NewMemoryDFXRepository()}, config.StructuredConfig{App: config.App{
		Version:       "test",
		TokenSecret:   "token-secret",
		TokenIssuer:   "compositor-test",
		TokenDuration: time.Minute,
		ClientSecret:  "client-secret",
	}}, models.AppBuildInfo{}, log)
	require.NoError(t, err)

	h := NewHandler(services, log)
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(h.ServerOptions()...)
	h.Register(srv)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { cc.Close() })

	return &testVSync{client: NewVSyncConnectionClient(cc), services: services, distributor: dist}
}

func (v *testVSync) authorized(t *testing.T, ctx context.Context, pid int32, caps ...models.Capability) context.Context {
	t.Helper()
	resp, err := v.services.AuthService.CreateToken(ctx, "client-secret", models.TokenRequest{Pid: pid, Capabilities: caps})
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+resp.Token)
}

// ─────────────────────────────────────────────
// Authentication
// ─────────────────────────────────────────────

func TestUnauthenticated(t *testing.T) {
	v := newTestVSync(t)
	ctx := context.Background()

	_, err := v.client.CreateConnection(ctx, &CreateConnectionRequest{Name: "ui"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer forged")
	_, err = v.client.Transact(bad, &vsync.Request{Descriptor: vsync.InterfaceDescriptor})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

// ─────────────────────────────────────────────
// CreateConnection / Transact / Receive
// ─────────────────────────────────────────────

func TestCreateConnection_Errors(t *testing.T) {
	v := newTestVSync(t)
	ctx := context.Background()

	_, err := v.client.CreateConnection(v.authorized(t, ctx, 42, models.CapTransactions), &CreateConnectionRequest{Name: "ui"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = v.client.CreateConnection(v.authorized(t, ctx, 42, models.CapVSync), &CreateConnectionRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestVSyncRoundTrip(t *testing.T) {
	v := newTestVSync(t)
	ctx := v.authorized(t, context.Background(), 42, models.CapVSync)

	created, err := v.client.CreateConnection(ctx, &CreateConnectionRequest{Name: "ui"})
	require.NoError(t, err)

	reply, err := v.client.Transact(ctx, &vsync.Request{
		Descriptor:   vsync.InterfaceDescriptor,
		ConnectionID: created.ConnectionID,
		Code:         vsync.CodeRequestNextVSync,
	})
	require.NoError(t, err)
	require.Equal(t, vsync.ReplyOK, reply.Code)

	reply, err = v.client.Transact(ctx, &vsync.Request{
		Descriptor:   vsync.InterfaceDescriptor,
		ConnectionID: created.ConnectionID,
		Code:         vsync.CodeGetVSyncPeriod,
	})
	require.NoError(t, err)
	var period vsync.PeriodReply
	require.NoError(t, vsync.DecodePayload(reply.Payload, &period))
	assert.Positive(t, period.Period)

	require.Equal(t, 1, v.distributor.OnVSync(vsync.Tick{Timestamp: 1000, Period: 16 * time.Millisecond, Count: 1}))

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := v.client.Receive(streamCtx, &ReceiveRequest{ConnectionID: created.ConnectionID})
	require.NoError(t, err)

	ev, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), ev.Timestamp)
	assert.Equal(t, uint64(1), ev.FrameCount)

	cancel()
	require.Eventually(t, func() bool { return v.distributor.Len() == 0 }, time.Second, 10*time.Millisecond,
		"closing the stream removes the connection")
}

func TestReceive_ForeignConnection(t *testing.T) {
	v := newTestVSync(t)
	owner := v.authorized(t, context.Background(), 42, models.CapVSync)
	other := v.authorized(t, context.Background(), 43, models.CapVSync)

	created, err := v.client.CreateConnection(owner, &CreateConnectionRequest{Name: "ui"})
	require.NoError(t, err)

	stream, err := v.client.Receive(other, &ReceiveRequest{ConnectionID: created.ConnectionID})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Equal(t, 1, v.distributor.Len(), "a rejected stream does not remove the owner's connection")

	reply, err := v.client.Transact(other, &vsync.Request{
		Descriptor:   vsync.InterfaceDescriptor,
		ConnectionID: created.ConnectionID,
		Code:         vsync.CodeRequestNextVSync,
	})
	require.NoError(t, err)
	assert.Equal(t, vsync.ReplyNoPermission, reply.Code)
}

// ─────────────────────────────────────────────
// Error mapping
// ─────────────────────────────────────────────

func TestCodeFromError(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{service.ErrPermissionDenied, codes.PermissionDenied},
		{ErrMissingMetadata, codes.Unauthenticated},
		{vsync.ErrEmptyName, codes.InvalidArgument},
		{vsync.ErrConnectionNotFound, codes.NotFound},
		{vsync.ErrConnectionTableFull, codes.ResourceExhausted},
		{backend.ErrExecutorStopped, codes.Unavailable},
		{errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, codeFromError(tt.err))
		})
	}
}
