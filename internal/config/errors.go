// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by validate when a configuration group is
// incomplete or out of range.
var (
	// ErrInvalidAppConfigs indicates missing token secrets or an unknown log level.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidVSyncConfigs indicates a refresh rate or table size out of range.
	ErrInvalidVSyncConfigs = errors.New("invalid vsync configuration")
	// ErrInvalidTransactionConfigs indicates a non-positive barrier timeout or queue limit.
	ErrInvalidTransactionConfigs = errors.New("invalid transactions configuration")
	// ErrInvalidComposerConfigs indicates a malformed software screen setup.
	ErrInvalidComposerConfigs = errors.New("invalid composer configuration")
	// ErrInvalidServerConfigs indicates missing listen addresses.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
