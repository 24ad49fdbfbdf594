// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the feed server over plain HTTP.
//
// The server accepts the same binary login and registration frames on
// POST /login that it accepts over the websocket, and answers with a Login
// frame. The client uses this as a fallback while the websocket is down.
package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-feed-client/internal/config"
	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/internal/utils"
)

const loginPath = "/login"

// HTTPAuthenticator posts login and registration frames to the server's
// HTTP login endpoint.
type HTTPAuthenticator struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPAuthenticator builds an authenticator for the server at
// cfg.HTTPAddress. Returns an error if the address is empty or not a URL.
func NewHTTPAuthenticator(cfg config.ClientAdapter, logger *logger.Logger) (*HTTPAuthenticator, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &HTTPAuthenticator{client: client, logger: logger}, nil
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
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Authenticate sends frame, an encoded login or registration request, and
// returns the raw response frame.
func (a *HTTPAuthenticator) Authenticate(ctx context.Context, frame []byte) ([]byte, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(frame).
		Post(loginPath)
	if err != nil {
		a.logger.Err(err).Str("func", "*HTTPAuthenticator.Authenticate").Msg("login request failed")
		return nil, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		a.logger.Warn().Err(err).Int("status", resp.StatusCode()).Msg("login request rejected")
		return nil, err
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	a.logger.Debug().Int("bytes", len(body)).Msg("login response received over http")
	return body, nil
}
