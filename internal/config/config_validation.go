// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

func (cfg *ClientConfig) validate() error {
	if err := validateURL(cfg.Adapter.WSAddress, "ws", "wss"); err != nil {
		return fmt.Errorf("%w: websocket address: %v", ErrInvalidAdapterConfigs, err)
	}

	// HTTP fallback is optional
	if cfg.Adapter.HTTPAddress != "" {
		if err := validateURL(cfg.Adapter.HTTPAddress, "http", "https"); err != nil {
			return fmt.Errorf("%w: http address: %v", ErrInvalidAdapterConfigs, err)
		}
		if cfg.Adapter.RequestTimeout <= 0 {
			return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
		}
	}

	t := cfg.Transport
	switch {
	case t.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidTransportConfigs)
	case t.AttemptTimeout <= 0:
		return fmt.Errorf("%w: attempt timeout must be positive", ErrInvalidTransportConfigs)
	case t.BackoffBase <= 0 || t.BackoffMax < t.BackoffBase:
		return fmt.Errorf("%w: backoff must satisfy 0 < base <= max", ErrInvalidTransportConfigs)
	}

	switch cfg.Storage.Driver {
	case "sqlite":
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: sqlite driver needs a database file", ErrInvalidStorageConfigs)
		}
	case "file":
		if cfg.Storage.File.Path == "" {
			return fmt.Errorf("%w: file driver needs a path", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	return nil
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported scheme %q", u.Scheme)
}
