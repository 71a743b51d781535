// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/utils"
	"github.com/MKhiriev/go-compositor/models"
)

// authService is the concrete implementation of AuthService.
// It hands out capability tokens to client processes that know the shared
// client secret and verifies tokens presented on every later call.
type authService struct {
	// clientSecret must be presented by a process asking for a token.
	clientSecret string

	// signKey is the HMAC key tokens are signed and verified with. It is
	// derived once from the configured secret and salt.
	signKey []byte

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService derives the signing key from cfg and returns the service.
// It fails when no token secret is configured.
func NewAuthService(cfg config.App, logger *logger.Logger) (AuthService, error) {
	if cfg.TokenSecret == "" {
		return nil, ErrNoSigningSecret
	}

	return &authService{
		clientSecret:  cfg.ClientSecret,
		signKey:       utils.DeriveSigningKey(cfg.TokenSecret, cfg.TokenSalt),
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}, nil
}

// CreateToken issues a capability token for req.Pid.
//
// Returns:
//   - ErrInvalidClientSecret if clientSecret does not match the configured one.
//   - ErrInvalidDataProvided if the pid is not positive, no capabilities are
//     requested or one of them is unknown.
//   - ErrTokenCreationFailed if signing fails.
func (a *authService) CreateToken(ctx context.Context, clientSecret string, req models.TokenRequest) (models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	if !utils.SecretsEqual(clientSecret, a.clientSecret) {
		log.Warn().Int32("pid", req.Pid).Msg("token requested with a wrong client secret")
		return models.TokenResponse{}, ErrInvalidClientSecret
	}

	if req.Pid <= 0 || len(req.Capabilities) == 0 {
		log.Error().Any("request", req).Msg("invalid token request")
		return models.TokenResponse{}, ErrInvalidDataProvided
	}
	for _, c := range req.Capabilities {
		if !knownCapability(c) {
			log.Error().Str("capability", string(c)).Msg("unknown capability requested")
			return models.TokenResponse{}, fmt.Errorf("%w: unknown capability %q", ErrInvalidDataProvided, c)
		}
	}

	caller := models.Caller{Pid: req.Pid, Capabilities: req.Capabilities}
	token, err := utils.GenerateCapabilityToken(a.tokenIssuer, caller, a.tokenDuration, a.signKey)
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Int32("pid", req.Pid).Any("capabilities", req.Capabilities).Msg("capability token issued")
	return models.TokenResponse{Token: token}, nil
}

// ParseToken verifies the signature, issuer and expiry of token. Every
// failure is reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, token string) (models.Caller, error) {
	caller, err := utils.ValidateAndParseCapabilityToken(token, a.signKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("capability token rejected")
		return models.Caller{}, ErrTokenIsExpiredOrInvalid
	}

	return caller, nil
}

func knownCapability(c models.Capability) bool {
	switch c {
	case models.CapVSync, models.CapVSyncAdmin, models.CapTransactions, models.CapScreenAdmin:
		return true
	}
	return false
}
