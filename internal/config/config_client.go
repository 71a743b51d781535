// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds operator client settings derived from the shared
// structured config.
type ClientApp struct {
	// ClientSecret is presented to the server to obtain a capability token.
	ClientSecret string
	// RefreshInterval is how often the monitor polls the server.
	RefreshInterval time.Duration
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// GRPCAddress is the gRPC endpoint address used by the client.
	GRPCAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
}

// GetClientConfig builds and validates the client view of the configuration.
// Server-only requirements (token signing secret) are not enforced.
func GetClientConfig() (*ClientConfig, error) {
	b := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON()
	if b.err != nil {
		return nil, fmt.Errorf("error get structured config: %w", b.err)
	}

	cfg, err := b.merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			ClientSecret:    cfg.App.ClientSecret,
			RefreshInterval: cfg.Workers.MonitorRefresh,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}
