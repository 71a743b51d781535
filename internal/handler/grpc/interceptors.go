// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationKey = "authorization"
	traceIDKey       = "x-trace-id"
)

// ServerOptions returns the interceptor chain every VSync call passes
// through: trace id and access logging first, then authentication.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.unaryLogging, h.unaryAuth),
		grpc.ChainStreamInterceptor(h.streamLogging, h.streamAuth),
	}
}

// withTraceID puts a child logger carrying the request's trace id into ctx.
func (h *Handler) withTraceID(ctx context.Context) context.Context {
	traceID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 {
			traceID = values[0]
		}
	}
	if traceID == "" {
		traceID = utils.NewTraceID()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	return l.WithContext(ctx)
}

func (h *Handler) unaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx = h.withTraceID(ctx)
	start := time.Now()

	resp, err := handler(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()
	return resp, err
}

func (h *Handler) streamLogging(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx := h.withTraceID(ss.Context())
	start := time.Now()

	err := handler(srv, &contextStream{ServerStream: ss, ctx: ctx})

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()
	return err
}

func (h *Handler) unaryAuth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	caller, err := h.authenticate(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return handler(utils.WithCaller(ctx, caller), req)
}

func (h *Handler) streamAuth(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	caller, err := h.authenticate(ss.Context())
	if err != nil {
		return toStatus(err)
	}
	return handler(srv, &contextStream{ServerStream: ss, ctx: utils.WithCaller(ss.Context(), caller)})
}

// authenticate reads the bearer token from the "authorization" metadata.
func (h *Handler) authenticate(ctx context.Context) (models.Caller, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return models.Caller{}, ErrMissingMetadata
	}
	values := md.Get(authorizationKey)
	if len(values) == 0 {
		return models.Caller{}, ErrMissingMetadata
	}

	token, err := utils.ParseBearerToken(values[0])
	if err != nil {
		return models.Caller{}, err
	}

	caller, err := h.services.AuthService.ParseToken(ctx, token)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("vsync call with invalid token")
		return models.Caller{}, err
	}
	return caller, nil
}

// contextStream overrides the context of a server stream.
type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context {
	return s.ctx
}
