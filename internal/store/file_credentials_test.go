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

func TestFileCredentialStore_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileCredentialStore(":memory:")
	require.NoError(t, err)

	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Set(ctx, "abc"))
	token, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, s.Set(ctx, ""))
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// clearing twice is fine
	require.NoError(t, s.Clear(ctx))
}

func TestFileCredentialStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "session.json")

	s, err := NewFileCredentialStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "persisted"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := NewFileCredentialStore(path)
	require.NoError(t, err)
	token, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)

	require.NoError(t, reopened.Clear(ctx))
	again, err := NewFileCredentialStore(path)
	require.NoError(t, err)
	_, err = again.Get(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFileCredentialStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileCredentialStore(path)
	assert.Error(t, err)
}

func TestNewCredentialStore_File(t *testing.T) {
	cfg := config.ClientStorage{Driver: DriverFile, File: config.ClientFile{Path: ":memory:"}}

	s, closeFn, err := NewCredentialStore(context.Background(), cfg, logger.NewLogger("test"))
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.NoError(t, closeFn())

	_, err = s.Get(context.Background())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
