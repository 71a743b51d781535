// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenInfo_JSONRoundTrip(t *testing.T) {
	in := ScreenInfo{ScreenID: 3, Name: "hdmi", Width: 1920, Height: 1080, State: ScreenActive, Layers: 2, LayerCapacity: 4}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"active"`)

	var out ScreenInfo
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestScreenState_UnmarshalText(t *testing.T) {
	tests := []struct {
		text    string
		want    ScreenState
		wantErr bool
	}{
		{text: "disconnected", want: ScreenDisconnected},
		{text: "connecting", want: ScreenConnecting},
		{text: "active", want: ScreenActive},
		{text: "repainting", want: ScreenRepainting},
		{text: "unknown", wantErr: true},
		{text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var s ScreenState
			err := s.UnmarshalText([]byte(tt.text))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestCompositionMode_UnmarshalText(t *testing.T) {
	for _, mode := range []CompositionMode{CompositionUniform, CompositionOffline, CompositionRedraw} {
		text, err := mode.MarshalText()
		require.NoError(t, err)

		var got CompositionMode
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, mode, got)
	}

	var m CompositionMode
	assert.ErrorIs(t, m.UnmarshalText([]byte("gpu")), ErrInvalidArgument)
}
