// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/go-resty/resty/v2"
)

// ClientSecretHeader carries the shared client secret on token requests.
const ClientSecretHeader = "X-Client-Secret"

type httpServerAdapter struct {
	client *utils.HTTPClient

	clientSecret string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and applies the configured request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client:       utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		clientSecret: appCfg.ClientSecret,
		logger:       logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) RequestToken(ctx context.Context, req models.TokenRequest) error {
	var token models.TokenResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(ClientSecretHeader, h.clientSecret).
		SetBody(req).
		SetResult(&token).
		Post("/api/auth/token")
	if err != nil {
		return fmt.Errorf("token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken(token.Token)
	h.logger.Debug().Int32("pid", req.Pid).Msg("capability token received")
	return nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo
	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/version")
	if err != nil {
		return info, fmt.Errorf("version request: %w", err)
	}
	return info, mapHTTPError(resp)
}

func (h *httpServerAdapter) SubmitTransaction(ctx context.Context, txn models.Transaction) (models.TransactionAccepted, error) {
	var accepted models.TransactionAccepted
	req, err := h.authedRequest(ctx)
	if err != nil {
		return accepted, err
	}

	resp, err := req.SetBody(txn).SetResult(&accepted).Post("/api/transactions")
	if err != nil {
		return accepted, fmt.Errorf("submit transaction request: %w", err)
	}
	return accepted, mapHTTPError(resp)
}

func (h *httpServerAdapter) OpenSyncTransaction(ctx context.Context, barrier models.SyncTransactionRequest) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetBody(barrier).Post("/api/sync-transactions")
	if err != nil {
		return fmt.Errorf("open sync transaction request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CloseSyncTransaction(ctx context.Context, syncID uint64) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParam("syncID", strconv.FormatUint(syncID, 10)).
		Post("/api/sync-transactions/{syncID}/close")
	if err != nil {
		return fmt.Errorf("close sync transaction request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListScreens(ctx context.Context) ([]models.ScreenInfo, error) {
	var screens []models.ScreenInfo
	if err := h.getJSON(ctx, "/api/screens", &screens); err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	return screens, nil
}

func (h *httpServerAdapter) CreateVirtualScreen(ctx context.Context, screen models.VirtualScreenRequest) (models.ScreenID, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return 0, err
	}

	var created models.VirtualScreenCreated
	resp, err := req.SetBody(screen).SetResult(&created).Post("/api/screens/virtual")
	if err != nil {
		return 0, fmt.Errorf("create virtual screen request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}
	return created.ScreenID, nil
}

// RemoveVirtualScreen succeeds for ids that are already gone.
func (h *httpServerAdapter) RemoveVirtualScreen(ctx context.Context, id models.ScreenID) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParam("screenID", strconv.FormatUint(uint64(id), 10)).
		Delete("/api/screens/virtual/{screenID}")
	if err != nil {
		return fmt.Errorf("remove virtual screen request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) VSyncStatus(ctx context.Context) (models.VSyncStatus, error) {
	var status models.VSyncStatus
	if err := h.getJSON(ctx, "/api/vsync", &status); err != nil {
		return status, fmt.Errorf("vsync status: %w", err)
	}
	return status, nil
}

func (h *httpServerAdapter) DirtyRegions(ctx context.Context) ([]models.GpuDirtyRegionInfo, error) {
	var regions []models.GpuDirtyRegionInfo
	if err := h.getJSON(ctx, "/api/dfx/dirty-regions", &regions); err != nil {
		return nil, fmt.Errorf("dirty regions: %w", err)
	}
	return regions, nil
}

func (h *httpServerAdapter) Synthesis(ctx context.Context) (models.LayerSynthesisModeInfo, error) {
	var info models.LayerSynthesisModeInfo
	if err := h.getJSON(ctx, "/api/dfx/synthesis", &info); err != nil {
		return info, fmt.Errorf("synthesis info: %w", err)
	}
	return info, nil
}

func (h *httpServerAdapter) Checkpoint(ctx context.Context) (models.DFXCheckpoint, error) {
	var cp models.DFXCheckpoint
	req, err := h.authedRequest(ctx)
	if err != nil {
		return cp, err
	}

	resp, err := req.SetResult(&cp).Post("/api/dfx/checkpoint")
	if err != nil {
		return cp, fmt.Errorf("checkpoint request: %w", err)
	}
	return cp, mapHTTPError(resp)
}

func (h *httpServerAdapter) Checkpoints(ctx context.Context, limit int) ([]models.DFXCheckpoint, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/dfx/checkpoints")
	if err != nil {
		return nil, fmt.Errorf("checkpoints request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var checkpoints []models.DFXCheckpoint
	if err = json.Unmarshal(resp.Body(), &checkpoints); err != nil {
		return nil, fmt.Errorf("decode checkpoints response: %w", err)
	}
	return checkpoints, nil
}

func (h *httpServerAdapter) PeerLost(ctx context.Context, pid int32) (models.PeerLostReport, error) {
	var report models.PeerLostReport
	req, err := h.authedRequest(ctx)
	if err != nil {
		return report, err
	}

	resp, err := req.
		SetPathParam("pid", strconv.FormatInt(int64(pid), 10)).
		SetResult(&report).
		Post("/api/clients/{pid}/lost")
	if err != nil {
		return report, fmt.Errorf("peer lost request: %w", err)
	}
	return report, mapHTTPError(resp)
}

func (h *httpServerAdapter) getJSON(ctx context.Context, path string, out any) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Get(path)
	if err != nil {
		return err
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(token), nil
}
