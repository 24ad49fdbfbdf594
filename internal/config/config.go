// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration container. It aggregates all
// sub-configurations and is populated by merging values from command-line
// flags, environment variables, an optional JSON file and the defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the server endpoints the client talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Transport holds the reconnect policy of the websocket connection.
	Transport Transport `envPrefix:"TRANSPORT_"`

	// Storage selects and configures the credential store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Engine holds synchronization engine options.
	Engine Engine `envPrefix:"ENGINE_"`

	// Metrics holds the optional Prometheus endpoint settings.
	Metrics Metrics `envPrefix:"METRICS_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds the addresses of the feed server.
type Adapter struct {
	// WSAddress is the websocket endpoint, e.g. "ws://127.0.0.1:8088/ws/".
	WSAddress string `env:"WS_ADDRESS"`

	// HTTPAddress is the base URL used for the HTTP login fallback. An empty
	// value disables the fallback.
	HTTPAddress string `env:"HTTP_ADDRESS"`

	// RequestTimeout bounds a single HTTP fallback request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Transport configures the connection manager.
type Transport struct {
	// AttemptTimeout bounds a single connection attempt.
	AttemptTimeout time.Duration `env:"ATTEMPT_TIMEOUT"`

	// MaxAttempts is the number of consecutive failed attempts after which
	// the connection is reported as exhausted.
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BackoffBase is the delay before the first reconnect attempt. It doubles
	// on every following attempt.
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffMax caps the delay between attempts.
	BackoffMax time.Duration `env:"BACKOFF_MAX"`
}

// Storage groups the credential store settings.
type Storage struct {
	// Driver is either "sqlite" or "file".
	Driver string `env:"DRIVER"`

	// DB holds the SQLite settings.
	DB DB `envPrefix:"DB_"`

	// File holds the JSON-file settings.
	File File `envPrefix:"FILE_"`
}

// DB holds the SQLite database settings.
type DB struct {
	// DSN is the path of the SQLite database file.
	DSN string `env:"DSN"`
}

// File holds the JSON-file store settings.
type File struct {
	// Path of the JSON document. ":memory:" keeps the token in memory only.
	Path string `env:"PATH"`
}

// Engine holds synchronization engine options.
type Engine struct {
	// RollbackRejectedVotes restores the prior vote of a post when the
	// server rejects the vote.
	RollbackRejectedVotes bool `env:"ROLLBACK_REJECTED_VOTES"`
}

// Metrics holds the Prometheus endpoint settings.
type Metrics struct {
	// Address is the host:port the /metrics endpoint listens on. Empty
	// disables the endpoint.
	Address string `env:"ADDRESS"`
}

// Log holds logging settings.
type Log struct {
	// Path is the log file. Empty logs to stderr.
	Path string `env:"PATH"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. args are the command-line arguments without the program name.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
