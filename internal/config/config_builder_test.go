// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func newTestBuilder(args ...string) *configBuilder {
	b := newConfigBuilder()
	b.args = args
	return b
}

func withSecrets(cfg *StructuredConfig) *StructuredConfig {
	cfg.App.TokenSecret = "secret"
	cfg.App.ClientSecret = "client"
	return cfg
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newTestBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_AppliesDefaults(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs, withSecrets(&StructuredConfig{}))

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, uint32(defaultRefreshRate), cfg.VSync.RefreshRate)
	assert.Equal(t, defaultSyncTimeout, cfg.Transactions.SyncTimeout)
	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultSimResolution, cfg.Composer.SimResolution)
}

func TestBuild_FirstSourceWins(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs,
		withSecrets(&StructuredConfig{VSync: VSync{RefreshRate: 120}}),
		&StructuredConfig{VSync: VSync{RefreshRate: 90, MaxConnections: 8}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, uint32(120), cfg.VSync.RefreshRate)
	assert.Equal(t, 8, cfg.VSync.MaxConnections)
}

func TestBuild_MissingSecretsFailValidation(t *testing.T) {
	cfg, err := newTestBuilder().build()
	require.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.NotNil(t, cfg)
}

// ── withEnv / withDotEnv ─────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("VSYNC_REFRESH_RATE", "144")
	t.Setenv("TRANSACTIONS_SYNC_TIMEOUT", "250ms")
	t.Setenv("APP_TOKEN_SECRET", "s")

	b := newTestBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, uint32(144), b.configs[0].VSync.RefreshRate)
	assert.Equal(t, 250*time.Millisecond, b.configs[0].Transactions.SyncTimeout)
	assert.Equal(t, "s", b.configs[0].App.TokenSecret)
}

func TestWithEnv_InvalidDuration(t *testing.T) {
	t.Setenv("TRANSACTIONS_SYNC_TIMEOUT", "soon")

	b := newTestBuilder().withEnv()
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithDotEnv_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("COMPOSER_SIM_SCREENS=3\n"), 0o600))
	t.Setenv(dotEnvPathVariable, path)
	t.Setenv("COMPOSER_SIM_SCREENS", "")
	require.NoError(t, os.Unsetenv("COMPOSER_SIM_SCREENS"))
	t.Cleanup(func() { _ = os.Unsetenv("COMPOSER_SIM_SCREENS") })

	b := newTestBuilder().withDotEnv().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, 3, b.configs[0].Composer.SimScreens)
}

func TestWithDotEnv_MissingFileIsIgnored(t *testing.T) {
	t.Setenv(dotEnvPathVariable, filepath.Join(t.TempDir(), "absent.env"))

	b := newTestBuilder().withDotEnv()
	assert.NoError(t, b.err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newTestBuilder("-refresh-rate", "90", "-a", "127.0.0.1:8081").withFlags()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, uint32(90), b.configs[0].VSync.RefreshRate)
	assert.Equal(t, "127.0.0.1:8081", b.configs[0].Server.HTTPAddress)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	b := newTestBuilder("-no-such-flag").withFlags()
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"vsync":        map[string]any{"refresh_rate": 75},
		"transactions": map[string]any{"sync_timeout": "2s"},
	})

	b := newTestBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, uint32(75), b.configs[1].VSync.RefreshRate)
	assert.Equal(t, 2*time.Second, b.configs[1].Transactions.SyncTimeout)
	assert.Equal(t, path, b.configs[1].JSONFilePath)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "nope.json")})
	b.withJSON()

	require.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}
