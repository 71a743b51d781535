// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transports for talking to the
// compositor daemon.
//
// [ServerAdapter] covers the REST API (tokens, transactions, screens, DFX)
// and is implemented over resty by [NewHTTPServerAdapter]. [VSyncAdapter]
// covers the VSync connection protocol over gRPC and is implemented by
// [NewGRPCVSyncAdapter].
//
// HTTP status codes are mapped by mapHTTPError to the sentinel errors in
// errors.go so callers can use [errors.Is] (e.g. [ErrTooManyRequests] for 429,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-compositor/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the REST side of the compositor API.
type ServerAdapter interface {
	// RequestToken presents the shared client secret and stores the issued
	// capability token for every later call.
	RequestToken(ctx context.Context, req models.TokenRequest) error

	SetToken(token string)
	Token() string

	Version(ctx context.Context) (models.AppBuildInfo, error)

	// SubmitTransaction is fire-and-forget: the reply acknowledges receipt,
	// Dropped is set when the server discarded it as stale.
	SubmitTransaction(ctx context.Context, txn models.Transaction) (models.TransactionAccepted, error)
	OpenSyncTransaction(ctx context.Context, req models.SyncTransactionRequest) error
	CloseSyncTransaction(ctx context.Context, syncID uint64) error

	ListScreens(ctx context.Context) ([]models.ScreenInfo, error)
	CreateVirtualScreen(ctx context.Context, req models.VirtualScreenRequest) (models.ScreenID, error)
	RemoveVirtualScreen(ctx context.Context, id models.ScreenID) error

	VSyncStatus(ctx context.Context) (models.VSyncStatus, error)

	DirtyRegions(ctx context.Context) ([]models.GpuDirtyRegionInfo, error)
	Synthesis(ctx context.Context) (models.LayerSynthesisModeInfo, error)
	Checkpoint(ctx context.Context) (models.DFXCheckpoint, error)
	Checkpoints(ctx context.Context, limit int) ([]models.DFXCheckpoint, error)

	// PeerLost reports a dead client process so the server releases what it
	// held.
	PeerLost(ctx context.Context, pid int32) (models.PeerLostReport, error)
}

// VSyncAdapter is the client side of one VSync connection.
type VSyncAdapter interface {
	// Connect creates the connection on the server. It must be called
	// before any other method.
	Connect(ctx context.Context, name string) (models.ConnectionID, error)
	RequestNextVSync(ctx context.Context) error
	SetRate(ctx context.Context, rate int32, autoTrigger bool) error
	Period(ctx context.Context) (int64, error)

	// Events streams deliveries until ctx is done or the stream breaks. The
	// channel is closed when the stream ends; closing the stream removes the
	// connection on the server.
	Events(ctx context.Context) (<-chan models.VSyncEvent, error)

	Close() error
}
