// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONFile_Success(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":          map[string]any{"token_secret": "ts", "token_duration": "1h", "log_level": "warn"},
		"vsync":        map[string]any{"refresh_rate": 90, "max_connections": 32},
		"transactions": map[string]any{"sync_timeout": "750ms", "queue_limit": 10},
		"composer":     map[string]any{"callback_budget": "1ms", "sim_screens": 2, "sim_resolution": "800x600", "direct_client_composition": true},
		"storage":      map[string]any{"db": map[string]any{"dsn": "dfx.db"}},
		"server":       map[string]any{"http_address": "localhost:1", "grpc_address": "localhost:2", "request_timeout": "9s"},
		"workers":      map[string]any{"checkpoint_interval": "10s", "watch_config": true},
	})

	cfg, err := ParseJSONFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ts", cfg.App.TokenSecret)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, uint32(90), cfg.VSync.RefreshRate)
	assert.Equal(t, 32, cfg.VSync.MaxConnections)
	assert.Equal(t, 750*time.Millisecond, cfg.Transactions.SyncTimeout)
	assert.Equal(t, 10, cfg.Transactions.QueueLimit)
	assert.Equal(t, time.Millisecond, cfg.Composer.CallbackBudget)
	assert.True(t, cfg.Composer.DirectClientComposition)
	assert.Equal(t, "800x600", cfg.Composer.SimResolution)
	assert.Equal(t, "dfx.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 9*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Workers.CheckpointInterval)
	assert.True(t, cfg.Workers.WatchConfig)
}

func TestParseJSONFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := ParseJSONFile(path)
	assert.Error(t, err)
}

func TestParseJSONFile_InvalidDuration(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"transactions": map[string]any{"sync_timeout": "forever"},
	})

	_, err := ParseJSONFile(path)
	assert.Error(t, err)
}

func TestDuration_NumericNanoseconds(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte("1000000")))
	assert.Equal(t, time.Millisecond, time.Duration(d))
}
