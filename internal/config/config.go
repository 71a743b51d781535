// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration of the compositor daemon.
// It is assembled by merging a .env file, environment variables,
// command-line flags and an optional JSON file, then completed with defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings: version, log level and the secrets
	// used for capability tokens.
	App App `envPrefix:"APP_"`

	// VSync holds the timing source and connection table settings.
	VSync VSync `envPrefix:"VSYNC_"`

	// Transactions holds the transaction synchronizer settings.
	Transactions Transactions `envPrefix:"TRANSACTIONS_"`

	// Composer holds composition engine and hardware backend settings.
	Composer Composer `envPrefix:"COMPOSER_"`

	// Storage holds the DFX checkpoint database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the addresses the operator client connects to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Version is reported by GET /version when no build version was linked in.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// TokenSecret is the secret the capability token signing key is derived
	// from. Must be kept confidential.
	// Env: APP_TOKEN_SECRET
	TokenSecret string `env:"TOKEN_SECRET"`

	// TokenSalt salts the signing key derivation.
	// Env: APP_TOKEN_SALT
	TokenSalt string `env:"TOKEN_SALT"`

	// TokenIssuer is the "iss" claim of every capability token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a capability token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// ClientSecret must be presented by clients asking for a token.
	// Env: APP_CLIENT_SECRET
	ClientSecret string `env:"CLIENT_SECRET"`
}

// VSync holds timing source settings.
type VSync struct {
	// RefreshRate is the initial hardware refresh rate in Hz.
	// Env: VSYNC_REFRESH_RATE
	RefreshRate uint32 `env:"REFRESH_RATE"`

	// MaxConnections bounds the connection table.
	// Env: VSYNC_MAX_CONNECTIONS
	MaxConnections int `env:"MAX_CONNECTIONS"`
}

// Transactions holds synchronizer settings.
type Transactions struct {
	// SyncTimeout bounds how long a synchronization barrier may hold
	// transactions before it is force-resolved.
	// Env: TRANSACTIONS_SYNC_TIMEOUT
	SyncTimeout time.Duration `env:"SYNC_TIMEOUT"`

	// QueueLimit bounds the number of queued transactions per process.
	// Env: TRANSACTIONS_QUEUE_LIMIT
	QueueLimit int `env:"QUEUE_LIMIT"`
}

// Composer holds composition engine and backend settings.
type Composer struct {
	// CallbackBudget is the time a hotplug or prepare-complete callback may
	// take before an overrun is logged.
	// Env: COMPOSER_CALLBACK_BUDGET
	CallbackBudget time.Duration `env:"CALLBACK_BUDGET"`

	// DirectClientComposition composes everything on the GPU when a screen
	// has more layers than hardware planes.
	// Env: COMPOSER_DIRECT_CLIENT_COMPOSITION
	DirectClientComposition bool `env:"DIRECT_CLIENT_COMPOSITION"`

	// SimScreens is the number of physical screens the software device
	// reports at startup.
	// Env: COMPOSER_SIM_SCREENS
	SimScreens int `env:"SIM_SCREENS"`

	// SimResolution is the software screens' resolution, "WIDTHxHEIGHT".
	// Env: COMPOSER_SIM_RESOLUTION
	SimResolution string `env:"SIM_RESOLUTION"`

	// SimLayerCapacity is the number of hardware planes per software screen.
	// Env: COMPOSER_SIM_LAYER_CAPACITY
	SimLayerCapacity int `env:"SIM_LAYER_CAPACITY"`
}

// Storage groups persistence settings.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the DFX checkpoint database.
type DB struct {
	// DSN is either a PostgreSQL URL ("postgres://...") or a SQLite file
	// path. Empty keeps checkpoints in memory.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP API, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the VSync gRPC service. When it
	// equals HTTPAddress both protocols share one listener.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound HTTP request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the endpoints used by the operator client.
type Adapter struct {
	// HTTPAddress is the compositor HTTP API address.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the compositor VSync gRPC address.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background worker settings.
type Workers struct {
	// CheckpointInterval is how often DFX counters are persisted and reset.
	// Zero disables the checkpoint worker.
	// Env: WORKERS_CHECKPOINT_INTERVAL
	CheckpointInterval time.Duration `env:"CHECKPOINT_INTERVAL"`

	// WatchConfig reloads the JSON config file on change.
	// Env: WORKERS_WATCH_CONFIG
	WatchConfig bool `env:"WATCH_CONFIG"`

	// MonitorRefresh is how often the operator monitor polls the server.
	// Env: WORKERS_MONITOR_REFRESH
	MonitorRefresh time.Duration `env:"MONITOR_REFRESH"`
}

// GetStructuredConfig loads, merges, defaults and validates the daemon
// configuration. For every field the first source that sets it wins:
//  1. Environment variables (including values loaded from the .env file,
//     which never override variables already present in the environment)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		build()
}
