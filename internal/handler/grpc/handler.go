// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc serves the VSync connection protocol: remote calls on a
// connection, connection creation and the event stream. Messages use the
// msgpack codec and every call carries a capability token in the
// "authorization" metadata.
package grpc

import (
	"context"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/service"
	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"google.golang.org/grpc"
)

// Handler is the root gRPC transport handler and implements
// [VSyncConnectionServer].
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches the VSync service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&VSyncConnectionServiceDesc, h)
}

// Transact never fails at the transport level once authenticated; the
// outcome is the reply code.
func (h *Handler) Transact(ctx context.Context, req *vsync.Request) (*vsync.Reply, error) {
	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		return nil, toStatus(ErrNoCaller)
	}

	reply := h.services.VSyncService.Transact(ctx, caller, *req)
	return &reply, nil
}

func (h *Handler) CreateConnection(ctx context.Context, req *CreateConnectionRequest) (*CreateConnectionReply, error) {
	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		return nil, toStatus(ErrNoCaller)
	}

	id, err := h.services.VSyncService.CreateConnection(ctx, caller, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CreateConnectionReply{ConnectionID: id}, nil
}

// Receive streams events until the client goes away or the connection is
// removed. The end of the stream removes the connection: a client that
// stops reading is treated as dead.
func (h *Handler) Receive(req *ReceiveRequest, stream grpc.ServerStream) error {
	ctx := stream.Context()
	log := logger.FromContext(ctx)

	caller, ok := utils.GetCallerFromContext(ctx)
	if !ok {
		return toStatus(ErrNoCaller)
	}

	conn, err := h.services.VSyncService.Subscribe(ctx, caller, req.ConnectionID)
	if err != nil {
		return toStatus(err)
	}
	defer h.services.VSyncService.RemoveConnection(context.WithoutCancel(ctx), conn.ID())

	log.Debug().Uint64("connection_id", uint64(conn.ID())).Int32("pid", caller.Pid).Msg("vsync stream opened")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Uint64("connection_id", uint64(conn.ID())).Msg("vsync stream closed by client")
			return nil
		case <-conn.Done():
			return nil
		case ev := <-conn.Receive():
			if err := stream.SendMsg(&ev); err != nil {
				log.Warn().Err(err).Uint64("connection_id", uint64(conn.ID())).Msg("vsync event not sent")
				return err
			}
		}
	}
}

var _ VSyncConnectionServer = (*Handler)(nil)
