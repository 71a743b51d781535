// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// statusCode before the body. Handlers use it for every JSON payload the
// compositor returns: screen listings, DFX reports, accepted transactions
// and models.ErrorResponse bodies.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error. Nothing has been written to w at that
// point, so the fallback status always reaches the client.
//
// Parameters:
//
//	w          - the HTTP response writer to write the response to
//	data       - any value to be serialized as JSON (struct, slice, map, nil)
//	statusCode - HTTP status code to set in the response (e.g. http.StatusAccepted)
//
// Returns:
//
//	int   - number of bytes written to the response body
//	error - non-nil if JSON marshaling or the body write fails
//
// Example usage:
//
//	WriteJSON(w, screens, http.StatusOK)
//	WriteJSON(w, models.ErrorResponse{Error: "screen not found"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
