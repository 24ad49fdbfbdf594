package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 9100}, expected: ":9100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{name: "localhost", input: "localhost:9100", want: NetAddress{Host: "localhost", Port: 9100}},
		{name: "ip", input: "0.0.0.0:9100", want: NetAddress{Host: "0.0.0.0", Port: 9100}},
		{name: "empty host", input: ":9100", want: NetAddress{Port: 9100}},
		{name: "no port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "hostname", input: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestParseFlags_AllFields(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-w", "ws://10.0.0.1:8088/ws/",
		"-http", "http://10.0.0.1:8088",
		"-request-timeout", "3s",
		"-attempt-timeout", "2s",
		"-max-attempts", "4",
		"-backoff-base", "100ms",
		"-backoff-max", "1s",
		"-storage", "file",
		"-d", "client.db",
		"-f", "session.json",
		"-rollback-rejected-votes",
		"-m", "localhost:9100",
		"-log", "client.log",
		"-config", "cfg.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "ws://10.0.0.1:8088/ws/", cfg.Adapter.WSAddress)
	assert.Equal(t, "http://10.0.0.1:8088", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Transport.AttemptTimeout)
	assert.Equal(t, 4, cfg.Transport.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Transport.BackoffBase)
	assert.Equal(t, time.Second, cfg.Transport.BackoffMax)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "session.json", cfg.Storage.File.Path)
	assert.True(t, cfg.Engine.RollbackRejectedVotes)
	assert.Equal(t, "localhost:9100", cfg.Metrics.Address)
	assert.Equal(t, "client.log", cfg.Log.Path)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_BadMetricsAddress(t *testing.T) {
	_, err := parseFlags([]string{"-m", "nowhere"})
	assert.Error(t, err)
}
