// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("server resources exhausted")
	ErrGone                = errors.New("client process is gone")
	ErrServiceUnavailable  = errors.New("hardware unavailable")
	ErrInternalServerError = errors.New("internal server error")

	ErrNoToken       = errors.New("no capability token, call RequestToken first")
	ErrVSyncCall     = errors.New("vsync call failed")
	ErrStreamStopped = errors.New("vsync event stream stopped")
)
