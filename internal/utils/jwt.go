// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-compositor/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams      = errors.New("invalid params for generating capability token")
	ErrInvalidAuthorization    = errors.New("invalid authorization header")
	ErrTokenWithoutPid         = errors.New("capability token carries no pid")
	ErrTokenWithoutCapabilites = errors.New("capability token carries no capabilities")
)

// GenerateCapabilityToken creates a signed HMAC-SHA256 capability token for
// caller.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the compositor that issued the token
//   - Subject   (sub): the caller pid encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - pid, caps:       the caller pid and its capabilities
//
// All parameters are required.
//
// Example usage:
//
//	token, err := utils.GenerateCapabilityToken("go-compositor", caller, time.Hour, key)
func GenerateCapabilityToken(issuer string, caller models.Caller, tokenDuration time.Duration, signKey []byte) (string, error) {
	if issuer == "" || tokenDuration <= 0 || len(signKey) == 0 || caller.Pid <= 0 {
		return "", ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &models.CapabilityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(int64(caller.Pid), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Pid:          caller.Pid,
		Capabilities: caller.Capabilities,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing capability token: %w", err)
	}

	return signed, nil
}

// ValidateAndParseCapabilityToken verifies the signature, issuer and
// expiration of tokenString and returns the caller it was issued for.
// Tokens signed with anything but HMAC are rejected.
func ValidateAndParseCapabilityToken(tokenString string, signKey []byte, issuer string) (models.Caller, error) {
	claims := &models.CapabilityClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return signKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Caller{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Pid <= 0 {
		return models.Caller{}, ErrTokenWithoutPid
	}
	if len(claims.Capabilities) == 0 {
		return models.Caller{}, ErrTokenWithoutCapabilites
	}

	return claims.Caller(), nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorization
	}
	return parts[1], nil
}
