package config

import "time"

// Default values applied when no other source sets a field.
const (
	DefaultWSAddress      = "ws://127.0.0.1:8088/ws/"
	DefaultHTTPAddress    = "http://127.0.0.1:8088"
	DefaultRequestTimeout = 10 * time.Second

	DefaultAttemptTimeout = 5 * time.Second
	DefaultMaxAttempts    = 10
	DefaultBackoffBase    = 500 * time.Millisecond
	DefaultBackoffMax     = 5 * time.Second

	DefaultStorageDriver = "sqlite"
	DefaultDSN           = "feed-client.db"
	DefaultFilePath      = "feed-client-session.json"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			WSAddress:      DefaultWSAddress,
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Transport: Transport{
			AttemptTimeout: DefaultAttemptTimeout,
			MaxAttempts:    DefaultMaxAttempts,
			BackoffBase:    DefaultBackoffBase,
			BackoffMax:     DefaultBackoffMax,
		},
		Storage: Storage{
			Driver: DefaultStorageDriver,
			DB:     DB{DSN: DefaultDSN},
			File:   File{Path: DefaultFilePath},
		},
	}
}
