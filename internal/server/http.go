package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-feed-client/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewHTTPServer returns a Server exposing handler on address.
func NewHTTPServer(address string, handler http.Handler, logger *logger.Logger) (Server, error) {
	if address == "" {
		return nil, ErrNoAddress
	}

	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}, nil
}

func (h *httpServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("http server listen: %w", err)
	}
	return h.serve(ctx, ln)
}

func (h *httpServer) serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		h.logger.Info().Str("address", ln.Addr().String()).Msg("launching HTTP server")
		errCh <- h.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server serve: %w", err)
	case <-ctx.Done():
	}

	h.shutdown()
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server serve: %w", err)
	}
	h.logger.Info().Msg("HTTP server shutdown gracefully")
	return nil
}

func (h *httpServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server shutdown")
	}
}
