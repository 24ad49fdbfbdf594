package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstConfigWins verifies that a field set by an earlier config is
// not overwritten by later ones, while unset fields are filled.
func TestBuild_FirstConfigWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{WSAddress: "ws://first:1/ws/"}},
		&StructuredConfig{Adapter: Adapter{WSAddress: "ws://second:2/ws/", HTTPAddress: "http://second:2"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "ws://first:1/ws/", cfg.Adapter.WSAddress)
	assert.Equal(t, "http://second:2", cfg.Adapter.HTTPAddress)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsEverything(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultWSAddress, cfg.Adapter.WSAddress)
	assert.Equal(t, DefaultMaxAttempts, cfg.Transport.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Transport.AttemptTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.False(t, cfg.Engine.RollbackRejectedVotes)
	assert.Empty(t, cfg.Metrics.Address)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ADAPTER_WS_ADDRESS", "ws://env:9/ws/")
	t.Setenv("TRANSPORT_MAX_ATTEMPTS", "3")

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "ws://env:9/ws/", b.configs[0].Adapter.WSAddress)
	assert.Equal(t, 3, b.configs[0].Transport.MaxAttempts)
}

func TestWithEnv_InvalidValueSetsError(t *testing.T) {
	t.Setenv("TRANSPORT_MAX_ATTEMPTS", "many")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_UnknownFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-no-such-flag"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: filepath.Join(t.TempDir(), "absent.json")})
	b.withJSON()
	assert.Error(t, b.err)
}

// ── precedence ────────────────────────────────────────────────────────────────

// TestGetStructuredConfig_Precedence checks flags > env > JSON > defaults.
func TestGetStructuredConfig_Precedence(t *testing.T) {
	path := writeTempJSONConfig(t, `{
		"adapter": {"ws_address": "ws://json:1/ws/", "http_address": "http://json:1"},
		"transport": {"max_attempts": 7, "backoff_base": "1s"},
		"storage": {"driver": "file", "file": {"path": "/tmp/json.json"}}
	}`)

	t.Setenv("CONFIG", path)
	t.Setenv("ADAPTER_WS_ADDRESS", "ws://env:2/ws/")
	t.Setenv("TRANSPORT_MAX_ATTEMPTS", "4")

	cfg, err := GetStructuredConfig([]string{"-w", "ws://flag:3/ws/"})
	require.NoError(t, err)

	assert.Equal(t, "ws://flag:3/ws/", cfg.Adapter.WSAddress)
	assert.Equal(t, "http://json:1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 4, cfg.Transport.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Transport.BackoffBase)
	assert.Equal(t, DefaultBackoffMax, cfg.Transport.BackoffMax)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/json.json", cfg.Storage.File.Path)
}

func TestGetClientConfig_Defaults(t *testing.T) {
	cfg, err := GetClientConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ClientAdapter{
		WSAddress:      DefaultWSAddress,
		HTTPAddress:    DefaultHTTPAddress,
		RequestTimeout: DefaultRequestTimeout,
	}, cfg.Adapter)
	assert.Equal(t, ClientTransport{
		AttemptTimeout: 5 * time.Second,
		MaxAttempts:    10,
		BackoffBase:    500 * time.Millisecond,
		BackoffMax:     5 * time.Second,
	}, cfg.Transport)
}

func TestGetClientConfig_InvalidFails(t *testing.T) {
	_, err := GetClientConfig([]string{"-storage", "redis"})
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
