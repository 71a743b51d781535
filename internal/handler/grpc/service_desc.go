// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
	"google.golang.org/grpc"
)

const (
	ServiceName = "compositor.VSyncConnection"

	TransactMethod         = "/" + ServiceName + "/Transact"
	CreateConnectionMethod = "/" + ServiceName + "/CreateConnection"
	ReceiveMethod          = "/" + ServiceName + "/Receive"
)

// VSyncConnectionServer is the server API of the VSync service.
type VSyncConnectionServer interface {
	Transact(ctx context.Context, req *vsync.Request) (*vsync.Reply, error)
	CreateConnection(ctx context.Context, req *CreateConnectionRequest) (*CreateConnectionReply, error)
	Receive(req *ReceiveRequest, stream grpc.ServerStream) error
}

func transactHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(vsync.Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VSyncConnectionServer).Transact(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TransactMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VSyncConnectionServer).Transact(ctx, req.(*vsync.Request))
	}
	return interceptor(ctx, in, info, handler)
}

func createConnectionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateConnectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VSyncConnectionServer).CreateConnection(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CreateConnectionMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VSyncConnectionServer).CreateConnection(ctx, req.(*CreateConnectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func receiveHandler(srv any, stream grpc.ServerStream) error {
	in := new(ReceiveRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(VSyncConnectionServer).Receive(in, stream)
}

// VSyncConnectionServiceDesc describes the service for grpc.Server.RegisterService.
var VSyncConnectionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VSyncConnectionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Transact", Handler: transactHandler},
		{MethodName: "CreateConnection", Handler: createConnectionHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Receive", Handler: receiveHandler, ServerStreams: true},
	},
}

// VSyncConnectionClient is the client API of the VSync service. Every call
// is sent with the msgpack codec.
type VSyncConnectionClient struct {
	cc grpc.ClientConnInterface
}

func NewVSyncConnectionClient(cc grpc.ClientConnInterface) *VSyncConnectionClient {
	return &VSyncConnectionClient{cc: cc}
}

func (c *VSyncConnectionClient) Transact(ctx context.Context, req *vsync.Request, opts ...grpc.CallOption) (*vsync.Reply, error) {
	out := new(vsync.Reply)
	if err := c.cc.Invoke(ctx, TransactMethod, req, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VSyncConnectionClient) CreateConnection(ctx context.Context, req *CreateConnectionRequest, opts ...grpc.CallOption) (*CreateConnectionReply, error) {
	out := new(CreateConnectionReply)
	if err := c.cc.Invoke(ctx, CreateConnectionMethod, req, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// Receive opens the event stream of a connection. Cancelling ctx closes the
// stream, which the server treats as the client going away.
func (c *VSyncConnectionClient) Receive(ctx context.Context, req *ReceiveRequest, opts ...grpc.CallOption) (*EventStream, error) {
	stream, err := c.cc.NewStream(ctx, &VSyncConnectionServiceDesc.Streams[0], ReceiveMethod, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &EventStream{stream: stream}, nil
}

// EventStream reads VSync events from an open Receive stream.
type EventStream struct {
	stream grpc.ClientStream
}

func (s *EventStream) Recv() (models.VSyncEvent, error) {
	var ev models.VSyncEvent
	if err := s.stream.RecvMsg(&ev); err != nil {
		return models.VSyncEvent{}, err
	}
	return ev, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
