// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
)

func (h *Handler) listScreens(w http.ResponseWriter, r *http.Request) {
	screens, err := h.services.ScreenService.ListScreens(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, screens, http.StatusOK)
}

func (h *Handler) createVirtualScreen(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.VirtualScreenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.services.ScreenService.CreateVirtualScreen(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.VirtualScreenCreated{ScreenID: id}, http.StatusCreated)
}

func (h *Handler) removeVirtualScreen(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := pathUint(r, "screenID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.ScreenService.RemoveVirtualScreen(r.Context(), caller, models.ScreenID(id)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
