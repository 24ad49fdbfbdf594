package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-feed-client/internal/config"
	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/internal/protocol"
	"github.com/MKhiriev/go-feed-client/internal/store"
	"github.com/MKhiriev/go-feed-client/internal/transport"
	"github.com/MKhiriev/go-feed-client/models"
)

// newFeedServer answers credential logins with token "T1" and feed requests
// with a single post.
func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	r := chi.NewRouter()
	r.Get("/ws/", func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			request, err := protocol.DecodeRequest(data)
			if err != nil {
				continue
			}

			var reply []byte
			switch request.Kind {
			case protocol.KindLoginWithCredentials:
				reply, err = protocol.EncodeLoginResponse(models.LoginResult{
					Token: "T1",
					User:  models.User{ID: 7, Username: request.Username},
				})
			case protocol.KindFetchFeed:
				reply, err = protocol.EncodeFeedResponse(models.FeedBatch{
					Token: "T1",
					Posts: []models.Post{{ID: 1, AuthorID: 7, Content: "first"}},
				})
			default:
				continue
			}
			if err != nil {
				return
			}
			if err = conn.WriteMessage(websocket.BinaryMessage, reply); err != nil {
				return
			}
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, serverURL string) *config.ClientConfig {
	t.Helper()
	return &config.ClientConfig{
		Adapter: config.ClientAdapter{
			WSAddress:      "ws" + strings.TrimPrefix(serverURL, "http") + "/ws/",
			RequestTimeout: time.Second,
		},
		Transport: config.ClientTransport{
			AttemptTimeout: time.Second,
			MaxAttempts:    3,
			BackoffBase:    10 * time.Millisecond,
			BackoffMax:     50 * time.Millisecond,
		},
		Storage: config.ClientStorage{
			Driver: store.DriverFile,
			File:   config.ClientFile{Path: filepath.Join(t.TempDir(), "session.json")},
		},
	}
}

func TestApp_LoginAndFetch(t *testing.T) {
	srv := newFeedServer(t)
	cfg := testConfig(t, srv.URL)

	in, w := io.Pipe()
	defer w.Close()
	out := &syncBuffer{}
	a, err := NewApp(context.Background(), cfg, in, out, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		return a.engine.Snapshot().Phase == transport.PhaseOpen
	}, 2*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(w, "login alice pw\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return a.engine.Snapshot().Authenticated
	}, 2*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(w, "feed\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(a.engine.Snapshot().Posts) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(w, "quit\n")
	require.NoError(t, err)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after quit")
	}

	snap := a.engine.Snapshot()
	assert.Equal(t, "alice", snap.User.Username)
	assert.Equal(t, "T1", snap.Session)
	assert.Contains(t, out.String(), "* logged in as alice")

	// the session outlives the process
	reopened, err := store.NewFileCredentialStore(cfg.Storage.File.Path)
	require.NoError(t, err)
	token, err := reopened.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
}

func TestNewApp_UnknownStorageDriver(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Storage.Driver = "redis"

	_, err := NewApp(context.Background(), cfg, strings.NewReader(""), io.Discard, logger.Nop())
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestNewApp_InvalidHTTPAddress(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Adapter.HTTPAddress = "http://"

	_, err := NewApp(context.Background(), cfg, strings.NewReader(""), io.Discard, logger.Nop())
	assert.Error(t, err)
}
