package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/internal/metrics"
)

func TestNewHTTPServer_NoAddress(t *testing.T) {
	srv, err := NewHTTPServer("", http.NotFoundHandler(), logger.Nop())
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Nil(t, srv)
}

func TestHTTPServer_ServesMetricsUntilCancelled(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.FrameSent()

	srv, err := NewHTTPServer("127.0.0.1:0", metrics.Handler(reg), logger.Nop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.(*httpServer).serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "feed_client_transport_frames_sent_total 1")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv, err := NewHTTPServer(ln.Addr().String(), http.NotFoundHandler(), logger.Nop())
	require.NoError(t, err)

	assert.Error(t, srv.Run(context.Background()))
}
