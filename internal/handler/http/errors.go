// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware and the handlers
// when reading the request. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoCaller is returned when a protected handler runs without an
	// authenticated caller in the request context.
	ErrNoCaller = errors.New("no authenticated caller in request context")

	ErrInvalidJSON   = errors.New("invalid JSON was passed")
	ErrInvalidPathID = errors.New("invalid id in request path")
)
