// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL}
	appCfg := config.ClientApp{ClientSecret: "client-secret"}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Base URL ────────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "with scheme", raw: "https://compositor.local/", want: "https://compositor.local"},
		{name: "spaces trimmed", raw: "  localhost:8080 ", want: "http://localhost:8080"},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Token ───────────────────────────────────────────────────────────────────

func TestRequestToken_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/token", r.URL.Path)
		assert.Equal(t, "client-secret", r.Header.Get(ClientSecretHeader))

		var req models.TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int32(42), req.Pid)

		writeJSON(t, w, http.StatusOK, models.TokenResponse{Token: "issued"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.RequestToken(context.Background(), models.TokenRequest{Pid: 42, Capabilities: []models.Capability{models.CapVSync}})

	require.NoError(t, err)
	assert.Equal(t, "issued", a.Token())
}

func TestRequestToken_WrongSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "invalid client secret"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.RequestToken(context.Background(), models.TokenRequest{Pid: 42})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid client secret")
	assert.Empty(t, a.Token())
}

func TestAuthedCall_WithoutToken(t *testing.T) {
	a := newTestAdapter(t, "localhost:1")

	_, err := a.ListScreens(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

// ── Transactions ────────────────────────────────────────────────────────────

func TestSubmitTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var txn models.Transaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&txn))
		writeJSON(t, w, http.StatusAccepted, models.TransactionAccepted{Pid: txn.Pid, Version: txn.Version, Dropped: txn.Version == 1})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	accepted, err := a.SubmitTransaction(context.Background(), models.Transaction{Pid: 7, Version: 2})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionAccepted{Pid: 7, Version: 2}, accepted)

	accepted, err = a.SubmitTransaction(context.Background(), models.Transaction{Pid: 7, Version: 1})
	require.NoError(t, err)
	assert.True(t, accepted.Dropped)
}

func TestSyncTransaction_OpenClose(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := context.Background()

	require.NoError(t, a.OpenSyncTransaction(ctx, models.SyncTransactionRequest{SyncID: 9, Participants: []int32{1, 2}}))
	require.NoError(t, a.CloseSyncTransaction(ctx, 9))

	assert.Equal(t, []string{
		"POST /api/sync-transactions",
		"POST /api/sync-transactions/9/close",
	}, paths)
}

// ── Screens ─────────────────────────────────────────────────────────────────

func TestVirtualScreens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/screens/virtual":
			var req models.VirtualScreenRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Width <= 0 {
				writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid argument"})
				return
			}
			writeJSON(t, w, http.StatusCreated, models.VirtualScreenCreated{ScreenID: req.ScreenID})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/screens/virtual/7":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/api/screens":
			writeJSON(t, w, http.StatusOK, []models.ScreenInfo{{ScreenID: 7, Name: "FUZZ", Virtual: true, State: models.ScreenActive}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := context.Background()

	id, err := a.CreateVirtualScreen(ctx, models.VirtualScreenRequest{Name: "FUZZ", Width: 640, Height: 480, ScreenID: 7})
	require.NoError(t, err)
	assert.Equal(t, models.ScreenID(7), id)

	_, err = a.CreateVirtualScreen(ctx, models.VirtualScreenRequest{Name: "bad", Width: 0, Height: 480})
	assert.ErrorIs(t, err, ErrBadRequest)

	screens, err := a.ListScreens(ctx)
	require.NoError(t, err)
	require.Len(t, screens, 1)
	assert.True(t, screens[0].Virtual)

	require.NoError(t, a.RemoveVirtualScreen(ctx, 7))
	require.NoError(t, a.RemoveVirtualScreen(ctx, 7))
}

// ── DFX ─────────────────────────────────────────────────────────────────────

func TestDFX(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/dfx/synthesis":
			writeJSON(t, w, http.StatusOK, models.LayerSynthesisModeInfo{UniformFrames: 2, OfflineFrames: 1, TotalFrames: 3})
		case "/api/dfx/dirty-regions":
			writeJSON(t, w, http.StatusOK, []models.GpuDirtyRegionInfo{{SurfaceID: 1}})
		case "/api/dfx/checkpoint":
			writeJSON(t, w, http.StatusCreated, models.DFXCheckpoint{ID: 5})
		case "/api/dfx/checkpoints":
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			writeJSON(t, w, http.StatusOK, []models.DFXCheckpoint{{ID: 5}, {ID: 4}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := context.Background()

	synthesis, err := a.Synthesis(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), synthesis.TotalFrames)

	regions, err := a.DirtyRegions(ctx)
	require.NoError(t, err)
	assert.Len(t, regions, 1)

	cp, err := a.Checkpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cp.ID)

	cps, err := a.Checkpoints(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, cps, 2)
}

// ── Error mapping ───────────────────────────────────────────────────────────

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, ErrForbidden},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusGone, ErrGone},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorResponse{Error: "boom"})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			a.SetToken("tok")

			_, err := a.PeerLost(context.Background(), 3)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
