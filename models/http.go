// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the JSON body returned by the HTTP API on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TransactionAccepted is returned for every received transaction. Dropped is
// true when the transaction was discarded as stale.
type TransactionAccepted struct {
	Pid     int32  `json:"pid"`
	Version uint64 `json:"version"`
	Dropped bool   `json:"dropped,omitempty"`
}

// VirtualScreenCreated is returned by the create virtual screen endpoint.
type VirtualScreenCreated struct {
	ScreenID ScreenID `json:"screen_id"`
}

// PeerLostReport lists what was released when a client process died.
type PeerLostReport struct {
	Pid          int32 `json:"pid"`
	Connections  int   `json:"connections"`
	Transactions int   `json:"transactions"`
	Surfaces     int   `json:"surfaces"`
}

// VSyncStatus is the timing source state reported to operators.
type VSyncStatus struct {
	RefreshRate uint32                `json:"refresh_rate"`
	Period      int64                 `json:"period"`
	Ticks       uint64                `json:"ticks"`
	Connections []VSyncConnectionInfo `json:"connections"`
}
