// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-compositor/models"
	"github.com/golang-jwt/jwt/v5"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateCapabilityToken_RoundTrip(t *testing.T) {
	caller := models.Caller{Pid: 321, Capabilities: []models.Capability{models.CapVSync, models.CapTransactions}}

	token, err := GenerateCapabilityToken("compositor", caller, time.Hour, testKey)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got, err := ValidateAndParseCapabilityToken(token, testKey, "compositor")
	if err != nil {
		t.Fatalf("expected valid token, got: %v", err)
	}
	if got.Pid != 321 {
		t.Errorf("expected pid 321, got %d", got.Pid)
	}
	if !got.Has(models.CapVSync) || !got.Has(models.CapTransactions) || got.Has(models.CapScreenAdmin) {
		t.Errorf("unexpected capabilities %v", got.Capabilities)
	}
}

func TestGenerateCapabilityToken_InvalidParams(t *testing.T) {
	caller := models.Caller{Pid: 1, Capabilities: []models.Capability{models.CapVSync}}

	tests := []struct {
		name     string
		issuer   string
		caller   models.Caller
		duration time.Duration
		key      []byte
	}{
		{"empty issuer", "", caller, time.Hour, testKey},
		{"zero duration", "iss", caller, 0, testKey},
		{"empty key", "iss", caller, time.Hour, nil},
		{"no pid", "iss", models.Caller{}, time.Hour, testKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateCapabilityToken(tt.issuer, tt.caller, tt.duration, tt.key)
			if !errors.Is(err, ErrInvalidTokenParams) {
				t.Errorf("expected ErrInvalidTokenParams, got %v", err)
			}
		})
	}
}

func TestValidateAndParseCapabilityToken_Rejects(t *testing.T) {
	caller := models.Caller{Pid: 5, Capabilities: []models.Capability{models.CapVSync}}
	token, err := GenerateCapabilityToken("compositor", caller, time.Hour, testKey)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateAndParseCapabilityToken(token, []byte("other-key"), "compositor"); err == nil {
		t.Error("expected signature error")
	}
	if _, err := ValidateAndParseCapabilityToken(token, testKey, "someone-else"); err == nil {
		t.Error("expected issuer error")
	}
	if _, err := ValidateAndParseCapabilityToken("not-a-token", testKey, "compositor"); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateAndParseCapabilityToken_Expired(t *testing.T) {
	claims := &models.CapabilityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "compositor",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Pid:          5,
		Capabilities: []models.Capability{models.CapVSync},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ValidateAndParseCapabilityToken(token, testKey, "compositor")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseCapabilityToken_NoCapabilities(t *testing.T) {
	claims := &models.CapabilityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "compositor"},
		Pid:              5,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ValidateAndParseCapabilityToken(token, testKey, "compositor")
	if !errors.Is(err, ErrTokenWithoutCapabilites) {
		t.Errorf("expected ErrTokenWithoutCapabilites, got %v", err)
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer  abc ", "abc", false},
		{"Basic abc", "", true},
		{"Bearer", "", true},
		{"", "", true},
		{"Bearer a b", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
