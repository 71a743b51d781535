// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/service"
	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is matched in order: an error may wrap both a service error
// and an error kind, and the service error decides.
var errorStatuses = []errorStatus{
	{service.ErrPermissionDenied, http.StatusForbidden},
	{service.ErrInvalidClientSecret, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{utils.ErrInvalidAuthorization, http.StatusUnauthorized},
	{ErrNoCaller, http.StatusUnauthorized},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidPathID, http.StatusBadRequest},

	{models.ErrInvalidArgument, http.StatusBadRequest},
	{models.ErrStaleState, http.StatusAccepted},
	{models.ErrResourceExhausted, http.StatusTooManyRequests},
	{models.ErrRemotePeerLost, http.StatusGone},
	{models.ErrHardwareUnavailable, http.StatusServiceUnavailable},
	{models.ErrInvariantViolation, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its status and a JSON body. Internal
// errors are not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	log := logger.FromRequest(r)
	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Int("status", status).Msg("request failed")

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
