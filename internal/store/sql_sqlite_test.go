package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-feed-client/internal/config"
	"github.com/MKhiriev/go-feed-client/internal/logger"
)

func TestSQLiteFilePath(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "feed-client.db", want: "feed-client.db"},
		{dsn: "/var/lib/feed/client.db?_fk=1", want: "/var/lib/feed/client.db"},
		{dsn: "file:client.db?cache=shared", want: "client.db"},
		{dsn: ":memory:", want: ""},
		{dsn: "file::memory:?cache=shared", want: ""},
		{dsn: "file:client.db?mode=memory", want: ""},
		{dsn: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteFilePath(tt.dsn))
		})
	}
}

func TestWithBusyTimeout(t *testing.T) {
	assert.Equal(t, "a.db?_busy_timeout=5000", withBusyTimeout("a.db"))
	assert.Equal(t, "a.db?_fk=1&_busy_timeout=5000", withBusyTimeout("a.db?_fk=1"))
	assert.Equal(t, "a.db?_busy_timeout=10", withBusyTimeout("a.db?_busy_timeout=10"))
}

func TestNewConnectSQLite_CreatesPrivateFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "dir", "client.db")

	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(dsn)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, db.Migrate(context.Background()))
}

func TestNewConnectSQLite_InMemory(t *testing.T) {
	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(context.Background()))
	s := NewSQLiteCredentialStore(db, logger.Nop())
	require.NoError(t, s.Set(context.Background(), "T1"))

	token, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
}
