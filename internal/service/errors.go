// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-compositor/models"
)

var (
	ErrInvalidDataProvided = fmt.Errorf("%w: invalid data provided", models.ErrInvalidArgument)

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidClientSecret     = errors.New("invalid client secret")
	ErrTokenCreationFailed     = errors.New("capability token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("capability token is expired or invalid")
	ErrNoSigningSecret         = errors.New("token secret is not configured")

	// ErrPermissionDenied is returned when the caller lacks a capability or
	// acts on behalf of another process.
	ErrPermissionDenied = errors.New("permission denied")

	ErrNilDependency = errors.New("service dependency is nil")
)
