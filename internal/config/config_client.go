package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds the server endpoints.
type ClientAdapter struct {
	WSAddress      string
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientTransport holds the reconnect policy.
type ClientTransport struct {
	AttemptTimeout time.Duration
	MaxAttempts    int
	BackoffBase    time.Duration
	BackoffMax     time.Duration
}

// ClientDB holds the SQLite settings.
type ClientDB struct {
	DSN string
}

// ClientFile holds the JSON-file store settings.
type ClientFile struct {
	Path string
}

// ClientStorage selects the credential store backend.
type ClientStorage struct {
	Driver string
	DB     ClientDB
	File   ClientFile
}

// ClientEngine holds synchronization engine options.
type ClientEngine struct {
	RollbackRejectedVotes bool
}

// ClientMetrics holds the Prometheus endpoint settings.
type ClientMetrics struct {
	Address string
}

// ClientLog holds logging settings.
type ClientLog struct {
	Path string
}

// ClientConfig is the validated configuration of the feed client.
type ClientConfig struct {
	Adapter   ClientAdapter
	Transport ClientTransport
	Storage   ClientStorage
	Engine    ClientEngine
	Metrics   ClientMetrics
	Log       ClientLog
}

// GetClientConfig loads the configuration from args, the environment and
// the optional JSON file, and validates it.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.client()
	if err = clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

func (cfg *StructuredConfig) client() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			WSAddress:      cfg.Adapter.WSAddress,
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Transport: ClientTransport{
			AttemptTimeout: cfg.Transport.AttemptTimeout,
			MaxAttempts:    cfg.Transport.MaxAttempts,
			BackoffBase:    cfg.Transport.BackoffBase,
			BackoffMax:     cfg.Transport.BackoffMax,
		},
		Storage: ClientStorage{
			Driver: cfg.Storage.Driver,
			DB:     ClientDB{DSN: cfg.Storage.DB.DSN},
			File:   ClientFile{Path: cfg.Storage.File.Path},
		},
		Engine:  ClientEngine{RollbackRejectedVotes: cfg.Engine.RollbackRejectedVotes},
		Metrics: ClientMetrics{Address: cfg.Metrics.Address},
		Log:     ClientLog{Path: cfg.Log.Path},
	}
}
