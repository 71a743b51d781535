// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-compositor/internal/adapter"
)

var (
	ErrNilAdapter      = errors.New("server adapter is required")
	ErrInvalidName     = errors.New("screen name is required")
	ErrInvalidSize     = errors.New("width and height must be positive integers")
	ErrNotVirtual      = errors.New("only virtual screens can be removed")
	ErrNothingSelected = errors.New("no screen selected")
)

func humanizeServerError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrNoToken):
		return "not authorized, restart the monitor to get a new token"
	case errors.Is(err, adapter.ErrForbidden):
		return "the monitor token lacks the capability for this action"
	case errors.Is(err, adapter.ErrServiceUnavailable):
		return "screen hardware is unavailable"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "compositor is unreachable"
	}

	return err.Error()
}
