package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileCredentialStore keeps the session token in a small JSON document. The
// special path ":memory:" keeps it in process memory only.
type fileCredentialStore struct {
	path     string
	inMemory bool

	mu      sync.RWMutex
	session *localSession
}

type localSession struct {
	Token string    `json:"token"`
	At    time.Time `json:"at"`
}

type localPersistedState struct {
	Session *localSession `json:"session,omitempty"`
}

// NewFileCredentialStore returns a [CredentialStore] persisted as JSON at
// path, loading any token already stored there.
func NewFileCredentialStore(path string) (CredentialStore, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &fileCredentialStore{
		path:     path,
		inMemory: path == ":memory:" || path == "memory",
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileCredentialStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || s.session.Token == "" {
		return "", ErrSessionNotFound
	}
	return s.session.Token, nil
}

func (s *fileCredentialStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &localSession{Token: token, At: time.Now().UTC()}
	return s.persist()
}

func (s *fileCredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	s.session = nil
	return s.persist()
}

func (s *fileCredentialStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local credential file: %w", err)
	}

	var st localPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local credential file: %w", err)
	}

	s.session = st.Session
	return nil
}

// persist must be called with mu held.
func (s *fileCredentialStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create local credential dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(localPersistedState{Session: s.session}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local credentials: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local credential file: %w", err)
	}

	return nil
}
