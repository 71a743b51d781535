// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(metrics.RequestMiddleware(h.services.Metrics))
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/version", h.getServerVersion)
		r.Method("GET", "/metrics", h.services.Metrics.Handler(nil))
		r.Post("/api/auth/token", h.createToken)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/transactions", h.submitTransaction)
		r.Post("/api/sync-transactions", h.openSyncTransaction)
		r.Post("/api/sync-transactions/{syncID}/close", h.closeSyncTransaction)

		r.Get("/api/screens", h.listScreens)
		r.Post("/api/screens/virtual", h.createVirtualScreen)
		r.Delete("/api/screens/virtual/{screenID}", h.removeVirtualScreen)

		r.Get("/api/vsync", h.vsyncStatus)

		r.Get("/api/dfx/dirty-regions", h.listDirtyRegions)
		r.Get("/api/dfx/dirty-regions/{surfaceID}", h.getDirtyRegion)
		r.Get("/api/dfx/synthesis", h.getSynthesis)
		r.Post("/api/dfx/checkpoint", h.createCheckpoint)
		r.Get("/api/dfx/checkpoints", h.listCheckpoints)

		r.Post("/api/clients/{pid}/lost", h.peerLost)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
