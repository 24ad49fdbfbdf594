// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"ADAPTER_WS_ADDRESS":      "ws://localhost:8088/ws/",
		"ADAPTER_HTTP_ADDRESS":    "http://localhost:8088",
		"ADAPTER_REQUEST_TIMEOUT": "15s",

		"TRANSPORT_ATTEMPT_TIMEOUT": "4s",
		"TRANSPORT_MAX_ATTEMPTS":    "6",
		"TRANSPORT_BACKOFF_BASE":    "200ms",
		"TRANSPORT_BACKOFF_MAX":     "3s",

		// Storage has nested prefixes: STORAGE_ + DB_ / FILE_
		"STORAGE_DRIVER":    "file",
		"STORAGE_DB_DSN":    "/data/client.db",
		"STORAGE_FILE_PATH": "/data/session.json",

		"ENGINE_ROLLBACK_REJECTED_VOTES": "true",
		"METRICS_ADDRESS":                ":9100",
		"LOG_PATH":                       "/tmp/client.log",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "ws://localhost:8088/ws/", cfg.Adapter.WSAddress)
	assert.Equal(t, "http://localhost:8088", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 4*time.Second, cfg.Transport.AttemptTimeout)
	assert.Equal(t, 6, cfg.Transport.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Transport.BackoffBase)
	assert.Equal(t, 3*time.Second, cfg.Transport.BackoffMax)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "/data/client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/data/session.json", cfg.Storage.File.Path)
	assert.True(t, cfg.Engine.RollbackRejectedVotes)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
	assert.Equal(t, "/tmp/client.log", cfg.Log.Path)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("TRANSPORT_BACKOFF_BASE", "not-a-duration")

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

func TestParseEnvFrom_IgnoresProcessEnvironment(t *testing.T) {
	t.Setenv("TRANSPORT_MAX_ATTEMPTS", "99")

	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, map[string]string{"STORAGE_DRIVER": "file"})

	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Zero(t, cfg.Transport.MaxAttempts)
	assert.Empty(t, cfg.Adapter.WSAddress)
}
