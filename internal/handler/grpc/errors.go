// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"errors"

	"github.com/MKhiriev/go-compositor/internal/service"
	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrMissingMetadata = errors.New("missing request metadata")
	ErrNoCaller        = errors.New("no authenticated caller in context")
)

type errorCode struct {
	target error
	code   codes.Code
}

// errorCodes is matched in order, service errors before error kinds.
var errorCodes = []errorCode{
	{service.ErrPermissionDenied, codes.PermissionDenied},
	{service.ErrTokenIsExpiredOrInvalid, codes.Unauthenticated},
	{utils.ErrInvalidAuthorization, codes.Unauthenticated},
	{ErrMissingMetadata, codes.Unauthenticated},
	{ErrNoCaller, codes.Unauthenticated},

	{models.ErrInvalidArgument, codes.InvalidArgument},
	{models.ErrStaleState, codes.NotFound},
	{models.ErrResourceExhausted, codes.ResourceExhausted},
	{models.ErrRemotePeerLost, codes.Aborted},
	{models.ErrHardwareUnavailable, codes.Unavailable},
}

func codeFromError(err error) codes.Code {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.target) {
			return ec.code
		}
	}
	return codes.Internal
}

// toStatus converts err into a gRPC status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(codeFromError(err), err.Error())
}
