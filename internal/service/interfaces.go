// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
)

// AuthService issues and validates capability tokens.
type AuthService interface {
	// CreateToken checks the shared client secret and signs a token carrying
	// the requested pid and capabilities.
	CreateToken(ctx context.Context, clientSecret string, req models.TokenRequest) (models.TokenResponse, error)

	// ParseToken verifies a token and returns the caller it identifies.
	ParseToken(ctx context.Context, token string) (models.Caller, error)
}

// VSyncService exposes the VSync dispatcher to transports.
type VSyncService interface {
	CreateConnection(ctx context.Context, caller models.Caller, name string) (models.ConnectionID, error)

	// Transact runs one remote call on a connection owned by the caller.
	Transact(ctx context.Context, caller models.Caller, req vsync.Request) vsync.Reply

	// Subscribe returns the connection the caller may read events from.
	Subscribe(ctx context.Context, caller models.Caller, id models.ConnectionID) (*vsync.Connection, error)

	// RemoveConnection is called when the receiving side of a connection
	// goes away. Removing an unknown id is a no-op.
	RemoveConnection(ctx context.Context, id models.ConnectionID)

	Status(ctx context.Context) models.VSyncStatus
}

// TransactionService accepts scene transactions and sync barriers.
type TransactionService interface {
	Submit(ctx context.Context, caller models.Caller, txn models.Transaction) (models.TransactionAccepted, error)
	OpenSync(ctx context.Context, caller models.Caller, req models.SyncTransactionRequest) error
	CloseSync(ctx context.Context, caller models.Caller, syncID uint64) error
}

// TransactionServiceWrapper decorates a TransactionService.
type TransactionServiceWrapper interface {
	Wrap(TransactionService) TransactionService
}

// ScreenService manages outputs. Every call is executed on the composition
// goroutine.
type ScreenService interface {
	CreateVirtualScreen(ctx context.Context, caller models.Caller, req models.VirtualScreenRequest) (models.ScreenID, error)
	RemoveVirtualScreen(ctx context.Context, caller models.Caller, id models.ScreenID) error
	ListScreens(ctx context.Context) ([]models.ScreenInfo, error)
}

// DFXService exposes the composition counters and their checkpoints.
type DFXService interface {
	DirtyRegions(ctx context.Context) []models.GpuDirtyRegionInfo
	DirtyRegion(ctx context.Context, id models.SurfaceID) models.GpuDirtyRegionInfo
	Synthesis(ctx context.Context) models.LayerSynthesisModeInfo

	// Checkpoint persists the current counters and resets them.
	Checkpoint(ctx context.Context) (models.DFXCheckpoint, error)
	Checkpoints(ctx context.Context, limit int) ([]models.DFXCheckpoint, error)
}

// LifecycleService releases everything a dead client process held.
type LifecycleService interface {
	PeerLost(ctx context.Context, caller models.Caller, pid int32) (models.PeerLostReport, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
