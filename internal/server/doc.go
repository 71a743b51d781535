// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP API and the VSync gRPC service.
//
// When both transports are configured on the same address they share one
// listener, split by cmux on the gRPC content type. Both stop when the
// context passed to RunServer is done.
package server
