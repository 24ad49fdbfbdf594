package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON decoding.
// Durations accept either a Go duration string ("5s") or nanoseconds.
type StructuredJSONConfig struct {
	Adapter struct {
		WSAddress      string   `json:"ws_address"`
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Transport struct {
		AttemptTimeout Duration `json:"attempt_timeout"`
		MaxAttempts    int      `json:"max_attempts"`
		BackoffBase    Duration `json:"backoff_base"`
		BackoffMax     Duration `json:"backoff_max"`
	} `json:"transport,omitempty"`

	Storage struct {
		Driver string `json:"driver"`
		DB     struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		File struct {
			Path string `json:"path"`
		} `json:"file,omitempty"`
	} `json:"storage,omitempty"`

	Engine struct {
		RollbackRejectedVotes bool `json:"rollback_rejected_votes"`
	} `json:"engine,omitempty"`

	Metrics struct {
		Address string `json:"address"`
	} `json:"metrics,omitempty"`

	Log struct {
		Path string `json:"path"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Adapter: Adapter{
			WSAddress:      jsonCfg.Adapter.WSAddress,
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Transport: Transport{
			AttemptTimeout: time.Duration(jsonCfg.Transport.AttemptTimeout),
			MaxAttempts:    jsonCfg.Transport.MaxAttempts,
			BackoffBase:    time.Duration(jsonCfg.Transport.BackoffBase),
			BackoffMax:     time.Duration(jsonCfg.Transport.BackoffMax),
		},
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			DB:     DB{DSN: jsonCfg.Storage.DB.DSN},
			File:   File{Path: jsonCfg.Storage.File.Path},
		},
		Engine:  Engine{RollbackRejectedVotes: jsonCfg.Engine.RollbackRejectedVotes},
		Metrics: Metrics{Address: jsonCfg.Metrics.Address},
		Log:     Log{Path: jsonCfg.Log.Path},
	}

	return cfg, nil
}

// Duration is a [time.Duration] that decodes from JSON strings or numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
