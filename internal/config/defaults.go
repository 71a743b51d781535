// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultRefreshRate        = 60
	defaultMaxConnections     = 256
	defaultSyncTimeout        = time.Second
	defaultQueueLimit         = 1024
	defaultCallbackBudget     = 2 * time.Millisecond
	defaultSimScreens         = 1
	defaultSimResolution      = "1920x1080"
	defaultSimLayerCapacity   = 4
	defaultHTTPAddress        = "localhost:8080"
	defaultGRPCAddress        = "localhost:9090"
	defaultRequestTimeout     = 5 * time.Second
	defaultTokenIssuer        = "go-compositor"
	defaultTokenDuration      = 24 * time.Hour
	defaultLogLevel           = "debug"
	defaultCheckpointInterval = time.Minute
	defaultMonitorRefresh     = time.Second
)

// defaultConfig is merged last, so it only fills fields no other source set.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:      defaultLogLevel,
			TokenIssuer:   defaultTokenIssuer,
			TokenDuration: defaultTokenDuration,
		},
		VSync: VSync{
			RefreshRate:    defaultRefreshRate,
			MaxConnections: defaultMaxConnections,
		},
		Transactions: Transactions{
			SyncTimeout: defaultSyncTimeout,
			QueueLimit:  defaultQueueLimit,
		},
		Composer: Composer{
			CallbackBudget:   defaultCallbackBudget,
			SimScreens:       defaultSimScreens,
			SimResolution:    defaultSimResolution,
			SimLayerCapacity: defaultSimLayerCapacity,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			GRPCAddress:    defaultGRPCAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultHTTPAddress,
			GRPCAddress:    defaultGRPCAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			CheckpointInterval: defaultCheckpointInterval,
			MonitorRefresh:     defaultMonitorRefresh,
		},
	}
}
