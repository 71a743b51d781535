// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/go-compositor/internal/config"
	myGRPC "github.com/MKhiriev/go-compositor/internal/handler/grpc"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// TokenSource returns the current capability token. ServerAdapter.Token
// satisfies it, so both transports share one token.
type TokenSource func() string

type grpcVSyncAdapter struct {
	conn   *grpc.ClientConn
	client *myGRPC.VSyncConnectionClient
	tokens TokenSource

	mu     sync.RWMutex
	connID models.ConnectionID

	logger *logger.Logger
}

// NewGRPCVSyncAdapter dials adapterCfg.GRPCAddress without TLS. Extra dial
// options are appended, which tests use to plug in an in-memory listener.
func NewGRPCVSyncAdapter(adapterCfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger, opts ...grpc.DialOption) (VSyncAdapter, error) {
	if adapterCfg.GRPCAddress == "" {
		return nil, fmt.Errorf("invalid adapter grpc address: empty address")
	}

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(adapterCfg.GRPCAddress, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", adapterCfg.GRPCAddress, err)
	}

	return &grpcVSyncAdapter{
		conn:   conn,
		client: myGRPC.NewVSyncConnectionClient(conn),
		tokens: tokens,
		logger: logger,
	}, nil
}

func (a *grpcVSyncAdapter) Connect(ctx context.Context, name string) (models.ConnectionID, error) {
	ctx, err := a.authorize(ctx)
	if err != nil {
		return 0, err
	}

	reply, err := a.client.CreateConnection(ctx, &myGRPC.CreateConnectionRequest{Name: name})
	if err != nil {
		return 0, fmt.Errorf("create vsync connection: %w", err)
	}

	a.mu.Lock()
	a.connID = reply.ConnectionID
	a.mu.Unlock()

	a.logger.Debug().Uint64("connection_id", uint64(reply.ConnectionID)).Str("name", name).Msg("vsync connection created")
	return reply.ConnectionID, nil
}

func (a *grpcVSyncAdapter) RequestNextVSync(ctx context.Context) error {
	_, err := a.transact(ctx, vsync.CodeRequestNextVSync, nil)
	return err
}

func (a *grpcVSyncAdapter) SetRate(ctx context.Context, rate int32, autoTrigger bool) error {
	payload, err := vsync.EncodePayload(vsync.SetRateArgs{Rate: rate, AutoTrigger: autoTrigger})
	if err != nil {
		return fmt.Errorf("encode set rate args: %w", err)
	}
	_, err = a.transact(ctx, vsync.CodeSetVSyncRate, payload)
	return err
}

func (a *grpcVSyncAdapter) Period(ctx context.Context) (int64, error) {
	payload, err := a.transact(ctx, vsync.CodeGetVSyncPeriod, nil)
	if err != nil {
		return 0, err
	}

	var reply vsync.PeriodReply
	if err = vsync.DecodePayload(payload, &reply); err != nil {
		return 0, fmt.Errorf("decode period reply: %w", err)
	}
	return reply.Period, nil
}

func (a *grpcVSyncAdapter) Events(ctx context.Context) (<-chan models.VSyncEvent, error) {
	id, err := a.connectionID()
	if err != nil {
		return nil, err
	}
	ctx, err = a.authorize(ctx)
	if err != nil {
		return nil, err
	}

	stream, err := a.client.Receive(ctx, &myGRPC.ReceiveRequest{ConnectionID: id})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamStopped, err)
	}

	events := make(chan models.VSyncEvent)
	go func() {
		defer close(events)
		for {
			ev, err := stream.Recv()
			if err != nil {
				if !errors.Is(err, io.EOF) && ctx.Err() == nil {
					a.logger.Warn().Err(err).Uint64("connection_id", uint64(id)).Msg("vsync event stream broken")
				}
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func (a *grpcVSyncAdapter) Close() error {
	return a.conn.Close()
}

func (a *grpcVSyncAdapter) transact(ctx context.Context, code vsync.Code, payload []byte) ([]byte, error) {
	id, err := a.connectionID()
	if err != nil {
		return nil, err
	}
	ctx, err = a.authorize(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := a.client.Transact(ctx, &vsync.Request{
		Descriptor:   vsync.InterfaceDescriptor,
		ConnectionID: id,
		Code:         code,
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("vsync transact %d: %w", code, err)
	}
	if err = reply.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVSyncCall, err)
	}
	return reply.Payload, nil
}

func (a *grpcVSyncAdapter) connectionID() (models.ConnectionID, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.connID == 0 {
		return 0, fmt.Errorf("%w: not connected", ErrVSyncCall)
	}
	return a.connID, nil
}

func (a *grpcVSyncAdapter) authorize(ctx context.Context) (context.Context, error) {
	token := a.tokens()
	if token == "" {
		return ctx, ErrNoToken
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token), nil
}
