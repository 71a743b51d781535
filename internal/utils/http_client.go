// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client so the adapter can build requests directly,
// while the constructor pins the compositor base URL and timeout.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 5*time.Second)
//	resp, err := client.R().SetAuthToken(token).Get("/api/screens")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client whose relative request paths resolve
// against baseURL.
//
// Each call returns an independent client with its own connection pool.
//
// Parameters:
//
//	baseURL - scheme and host of the compositor HTTP API, without a trailing "/"
//	timeout - per-request timeout; zero leaves resty's default (no timeout)
//
// Returns:
//
//	*HTTPClient - a ready-to-use HTTP client
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().SetBaseURL(baseURL)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{Client: c}
}
