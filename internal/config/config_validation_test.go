// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSecret = "secret"
	cfg.App.ClientSecret = "client"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "defaults with secrets", mutate: func(*StructuredConfig) {}},
		{name: "missing token secret", mutate: func(c *StructuredConfig) { c.App.TokenSecret = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown log level", mutate: func(c *StructuredConfig) { c.App.LogLevel = "loud" }, wantErr: ErrInvalidAppConfigs},
		{name: "refresh rate too high", mutate: func(c *StructuredConfig) { c.VSync.RefreshRate = MaxRefreshRate + 1 }, wantErr: ErrInvalidVSyncConfigs},
		{name: "no connections", mutate: func(c *StructuredConfig) { c.VSync.MaxConnections = 0 }, wantErr: ErrInvalidVSyncConfigs},
		{name: "zero sync timeout", mutate: func(c *StructuredConfig) { c.Transactions.SyncTimeout = 0 }, wantErr: ErrInvalidTransactionConfigs},
		{name: "bad resolution", mutate: func(c *StructuredConfig) { c.Composer.SimResolution = "wide" }, wantErr: ErrInvalidComposerConfigs},
		{name: "missing grpc address", mutate: func(c *StructuredConfig) { c.Server.GRPCAddress = "" }, wantErr: ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseResolution(t *testing.T) {
	w, h, err := ParseResolution("1280X720")
	require.NoError(t, err)
	assert.Equal(t, int32(1280), w)
	assert.Equal(t, int32(720), h)

	_, _, err = ParseResolution("0x720")
	assert.Error(t, err)
	_, _, err = ParseResolution("1280")
	assert.Error(t, err)
}
