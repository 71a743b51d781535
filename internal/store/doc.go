// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists DFX checkpoints: the synthesis mode counters and
// per-surface dirty region statistics captured when the engine counters are
// reset. Checkpoints go to PostgreSQL (pgx) or SQLite depending on the DSN,
// or stay in memory when no DSN is configured.
package store
