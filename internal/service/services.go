// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/composer"
	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/MKhiriev/go-compositor/internal/store"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/models"
)

type Services struct {
	AuthService        AuthService
	VSyncService       VSyncService
	TransactionService TransactionService
	ScreenService      ScreenService
	DFXService         DFXService
	LifecycleService   LifecycleService
	AppInfoService     AppInfoService

	Metrics *metrics.Metrics
}

// Components are the long-lived compositor parts the services front.
// Executor is the composition loop; every backend and scene mutation goes
// through it.
type Components struct {
	Generator    *vsync.Generator
	Distributor  *vsync.Distributor
	Stub         *vsync.Stub
	Synchronizer *transaction.Synchronizer
	Engine       *composer.Engine
	Backend      *backend.Backend
	Executor     backend.Executor
	Metrics      *metrics.Metrics
}

func NewServices(c Components, storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	if c.Generator == nil || c.Distributor == nil || c.Stub == nil || c.Synchronizer == nil ||
		c.Engine == nil || c.Backend == nil || c.Executor == nil || c.Metrics == nil || storages == nil {
		return nil, ErrNilDependency
	}

	authService, err := NewAuthService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	transactionService := NewTransactionValidationService(c.Metrics).
		Wrap(NewTransactionService(c.Synchronizer, c.Metrics, logger))

	return &Services{
		AuthService:        authService,
		VSyncService:       NewVSyncService(c.Distributor, c.Stub, c.Generator, logger),
		TransactionService: transactionService,
		ScreenService:      NewScreenService(c.Backend, c.Executor, logger),
		DFXService:         NewDFXService(c.Engine, c.Executor, storages.DFXRepository, logger),
		LifecycleService:   NewLifecycleService(c.Distributor, c.Synchronizer, c.Engine, c.Executor, logger),
		AppInfoService:     appInfoService,
		Metrics:            c.Metrics,
	}, nil
}
