// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Capability names an operation class a client process is allowed to use.
type Capability string

const (
	CapVSync        Capability = "vsync"
	CapVSyncAdmin   Capability = "vsync.admin"
	CapTransactions Capability = "transactions"
	CapScreenAdmin  Capability = "screen.admin"
)

// Caller is the authenticated identity of a client process, extracted from
// its capability token.
type Caller struct {
	Pid          int32
	Capabilities []Capability
}

// Has reports whether the caller holds capability c.
func (c Caller) Has(capability Capability) bool {
	return slices.Contains(c.Capabilities, capability)
}

// CapabilityClaims is the JWT claim set of a capability token.
type CapabilityClaims struct {
	jwt.RegisteredClaims

	Pid          int32        `json:"pid"`
	Capabilities []Capability `json:"caps"`
}

// Caller converts the claims into a [Caller].
func (c CapabilityClaims) Caller() Caller {
	return Caller{Pid: c.Pid, Capabilities: c.Capabilities}
}

// TokenRequest asks the server for a capability token.
type TokenRequest struct {
	Pid          int32        `json:"pid"`
	Capabilities []Capability `json:"capabilities"`
}

// TokenResponse carries an issued capability token.
type TokenResponse struct {
	Token string `json:"token"`
}
