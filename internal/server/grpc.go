// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"net"
	"time"

	myGRPC "github.com/MKhiriev/go-compositor/internal/handler/grpc"
	"github.com/MKhiriev/go-compositor/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type grpcServer struct {
	server *grpc.Server
	health *health.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer(handler.ServerOptions()...)
	handler.Register(s)
	return newGRPCServerFrom(s, logger)
}

// newGRPCServerFrom adds the health service to an already configured server.
func newGRPCServerFrom(s *grpc.Server, logger *logger.Logger) *grpcServer {
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)

	return &grpcServer{
		server: s,
		health: h,
		logger: logger,
	}
}

func (g *grpcServer) serve(lis net.Listener) error {
	g.logger.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
	return g.server.Serve(lis)
}

// shutdown waits up to timeout for open calls. VSync event streams only end
// when their client leaves, so the rest are cut off after that.
func (g *grpcServer) shutdown(timeout time.Duration) {
	g.health.Shutdown()

	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		g.logger.Warn().Dur("timeout", timeout).Msg("gRPC graceful stop timed out, closing open streams")
		g.server.Stop()
	}
}
