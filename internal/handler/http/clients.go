// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net/http"

	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
)

// ClientSecretHeader carries the shared secret a process presents to get a
// capability token.
const ClientSecretHeader = "X-Client-Secret"

func (h *Handler) createToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(r.Context(), r.Header.Get(ClientSecretHeader), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, token, http.StatusOK)
}

func (h *Handler) peerLost(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pid, err := pathUint(r, "pid")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pid > math.MaxInt32 {
		writeError(w, r, ErrInvalidPathID)
		return
	}

	report, err := h.services.LifecycleService.PeerLost(r.Context(), caller, int32(pid))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) vsyncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.VSyncService.Status(r.Context()), http.StatusOK)
}
