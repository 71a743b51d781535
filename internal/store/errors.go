// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrCheckpointNotSaved is returned when the checkpoint INSERT returned
	// no id.
	ErrCheckpointNotSaved = errors.New("dfx checkpoint was not saved")

	// ErrUnsupportedDSN is returned when the DSN names neither PostgreSQL
	// nor SQLite.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors, returned wrapped by repository
// methods when a SQL-level operation fails.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRows         = errors.New("failed to scan rows")
)
