// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// MaxRefreshRate is the highest refresh rate the timing source accepts.
const MaxRefreshRate = 360

// validate checks that the final merged [StructuredConfig] can be used to
// start the daemon.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSecret == "" || cfg.App.ClientSecret == "" {
		return fmt.Errorf("%w: token and client secrets are required", ErrInvalidAppConfigs)
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.VSync.RefreshRate == 0 || cfg.VSync.RefreshRate > MaxRefreshRate {
		return fmt.Errorf("%w: refresh rate %d out of range 1..%d", ErrInvalidVSyncConfigs, cfg.VSync.RefreshRate, MaxRefreshRate)
	}
	if cfg.VSync.MaxConnections < 1 {
		return fmt.Errorf("%w: max connections must be positive", ErrInvalidVSyncConfigs)
	}

	if cfg.Transactions.SyncTimeout <= 0 || cfg.Transactions.QueueLimit < 1 {
		return ErrInvalidTransactionConfigs
	}

	if cfg.Composer.SimScreens < 0 || cfg.Composer.SimLayerCapacity < 0 {
		return ErrInvalidComposerConfigs
	}
	if _, _, err := ParseResolution(cfg.Composer.SimResolution); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidComposerConfigs, err)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.ClientSecret == "" {
		return fmt.Errorf("%w: client secret is required", ErrInvalidAppConfigs)
	}

	return nil
}

// ParseResolution parses "WIDTHxHEIGHT" into positive dimensions.
func ParseResolution(s string) (int32, int32, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("resolution %q must look like 1920x1080", s)
	}

	width, err := strconv.ParseInt(w, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("resolution width: %w", err)
	}
	height, err := strconv.ParseInt(h, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("resolution height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("resolution %q must be positive", s)
	}

	return int32(width), int32(height), nil
}
