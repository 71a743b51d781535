// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
)

// submitTransaction answers 202 for every received transaction, including
// stale ones, which carry Dropped in the body.
func (h *Handler) submitTransaction(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var txn models.Transaction
	if err := decodeJSON(r, &txn); err != nil {
		writeError(w, r, err)
		return
	}

	accepted, err := h.services.TransactionService.Submit(r.Context(), caller, txn)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, accepted, http.StatusAccepted)
}

func (h *Handler) openSyncTransaction(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.SyncTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.TransactionService.OpenSync(r.Context(), caller, req); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) closeSyncTransaction(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	syncID, err := pathUint(r, "syncID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.TransactionService.CloseSync(r.Context(), caller, syncID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
