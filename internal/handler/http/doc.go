// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST surface of the compositor: transaction
// submission, sync barriers, virtual screens, DFX counters and checkpoints,
// capability tokens and peer-lost notifications, plus /metrics and /version.
//
// Every request passes through trace id assignment, access logging and
// request metrics; everything under /api except token issuance also needs a
// capability token.
package http
