// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/handler"
	myGRPC "github.com/MKhiriev/go-compositor/internal/handler/grpc"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 5 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	httpAddress string
	grpcAddress string

	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		httpAddress:     cfg.HTTPAddress,
		grpcAddress:     cfg.GRPCAddress,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger,
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer != nil && s.gRPCServer != nil && s.httpAddress == s.grpcAddress {
		lis, err := net.Listen("tcp", s.httpAddress)
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.httpAddress, err)
		}
		return s.serveShared(ctx, lis)
	}

	var httpLis, grpcLis net.Listener
	if s.httpServer != nil {
		lis, err := net.Listen("tcp", s.httpAddress)
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.httpAddress, err)
		}
		httpLis = lis
	}
	if s.gRPCServer != nil {
		lis, err := net.Listen("tcp", s.grpcAddress)
		if err != nil {
			if httpLis != nil {
				httpLis.Close()
			}
			return fmt.Errorf("listen %s: %w", s.grpcAddress, err)
		}
		grpcLis = lis
	}

	return s.serve(ctx, httpLis, grpcLis, nil)
}

// serveShared splits lis between gRPC (HTTP/2 with a gRPC content type) and
// everything else, which goes to the HTTP API.
func (s *server) serveShared(ctx context.Context, lis net.Listener) error {
	m := cmux.New(lis)
	grpcLis := m.MatchWithWriters(
		cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"),
		cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc+"+myGRPC.CodecName),
	)
	httpLis := m.Match(cmux.Any())

	s.logger.Info().Str("address", lis.Addr().String()).Msg("HTTP and gRPC share one listener")
	return s.serve(ctx, httpLis, grpcLis, &sharedListener{mux: m, root: lis})
}

// sharedListener is the cmux in front of a listener both transports use.
type sharedListener struct {
	mux  cmux.CMux
	root net.Listener
}

func (s *server) serve(ctx context.Context, httpLis, grpcLis net.Listener, shared *sharedListener) error {
	g, ctx := errgroup.WithContext(ctx)

	if httpLis != nil {
		g.Go(func() error { return s.httpServer.serve(httpLis) })
	}
	if grpcLis != nil {
		g.Go(func() error {
			// a shared listener may close under gRPC before GracefulStop runs
			if err := s.gRPCServer.serve(grpcLis); err != nil && !errors.Is(err, cmux.ErrListenerClosed) {
				return err
			}
			return nil
		})
	}
	if shared != nil {
		g.Go(func() error {
			if err := shared.mux.Serve(); err != nil && !errors.Is(err, net.ErrClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		s.shutdown()
		if shared != nil {
			shared.root.Close()
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info().Msg("server shut down")
	return err
}

func (s *server) shutdown() {
	if s.httpServer != nil {
		s.httpServer.shutdown(s.shutdownTimeout)
	}
	if s.gRPCServer != nil {
		s.gRPCServer.shutdown(s.shutdownTimeout)
	}
}
