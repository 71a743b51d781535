// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-compositor/internal/service"
	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
)

func (h *Handler) listDirtyRegions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.DFXService.DirtyRegions(r.Context()), http.StatusOK)
}

func (h *Handler) getDirtyRegion(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "surfaceID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, h.services.DFXService.DirtyRegion(r.Context(), models.SurfaceID(id)), http.StatusOK)
}

func (h *Handler) getSynthesis(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.DFXService.Synthesis(r.Context()), http.StatusOK)
}

func (h *Handler) createCheckpoint(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !caller.Has(models.CapScreenAdmin) {
		writeError(w, r, service.ErrPermissionDenied)
		return
	}

	cp, err := h.services.DFXService.Checkpoint(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, cp, http.StatusCreated)
}

// listCheckpoints reads an optional ?limit=N, newest first.
func (h *Handler) listCheckpoints(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: limit: %w", service.ErrInvalidDataProvided, err))
			return
		}
		limit = n
	}

	checkpoints, err := h.services.DFXService.Checkpoints(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, checkpoints, http.StatusOK)
}
