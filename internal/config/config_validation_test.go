package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validClientConfig() *ClientConfig {
	return defaultConfig().client()
}

func TestClientConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*ClientConfig) {}},
		{
			name:   "wss scheme",
			mutate: func(c *ClientConfig) { c.Adapter.WSAddress = "wss://feed.example.com/ws/" },
		},
		{
			name:   "fallback disabled",
			mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = ""; c.Adapter.RequestTimeout = 0 },
		},
		{
			name:    "http scheme for websocket",
			mutate:  func(c *ClientConfig) { c.Adapter.WSAddress = "http://127.0.0.1:8088/ws/" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "websocket without host",
			mutate:  func(c *ClientConfig) { c.Adapter.WSAddress = "ws:///ws/" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "fallback without timeout",
			mutate:  func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero attempts",
			mutate:  func(c *ClientConfig) { c.Transport.MaxAttempts = 0 },
			wantErr: ErrInvalidTransportConfigs,
		},
		{
			name:    "zero attempt timeout",
			mutate:  func(c *ClientConfig) { c.Transport.AttemptTimeout = 0 },
			wantErr: ErrInvalidTransportConfigs,
		},
		{
			name:    "backoff max below base",
			mutate:  func(c *ClientConfig) { c.Transport.BackoffMax = c.Transport.BackoffBase - time.Millisecond },
			wantErr: ErrInvalidTransportConfigs,
		},
		{
			name:    "sqlite without dsn",
			mutate:  func(c *ClientConfig) { c.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "file without path",
			mutate:  func(c *ClientConfig) { c.Storage.Driver = "file"; c.Storage.File.Path = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *ClientConfig) { c.Storage.Driver = "postgres" },
			wantErr: ErrInvalidStorageConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
