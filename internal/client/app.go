package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-feed-client/internal/adapter"
	"github.com/MKhiriev/go-feed-client/internal/config"
	"github.com/MKhiriev/go-feed-client/internal/engine"
	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/internal/metrics"
	"github.com/MKhiriev/go-feed-client/internal/server"
	"github.com/MKhiriev/go-feed-client/internal/store"
	"github.com/MKhiriev/go-feed-client/internal/transport"
	"github.com/MKhiriev/go-feed-client/internal/workers"
)

// App is one client process: a connection, an engine and a console, plus
// the optional metrics endpoint.
type App struct {
	engine  *engine.Engine
	conn    *transport.Manager
	workers *workers.Workers
	closers []func() error
	logger  *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp wires the client from cfg. Commands are read from in and output is
// written to out.
func NewApp(ctx context.Context, cfg *config.ClientConfig, in io.Reader, out io.Writer, log *logger.Logger) (*App, error) {
	a := &App{logger: log}

	credentials, closeStore, err := store.NewCredentialStore(ctx, cfg.Storage, log.WithComponent("store"))
	if err != nil {
		return nil, fmt.Errorf("create credential store: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	a.conn = transport.New(transport.Options{
		URL:            cfg.Adapter.WSAddress,
		AttemptTimeout: cfg.Transport.AttemptTimeout,
		MaxAttempts:    cfg.Transport.MaxAttempts,
		BackoffBase:    cfg.Transport.BackoffBase,
		BackoffMax:     cfg.Transport.BackoffMax,
		Metrics:        m,
	}, log.WithComponent("transport"))

	opts := engine.Options{
		RollbackRejectedVotes: cfg.Engine.RollbackRejectedVotes,
		Metrics:               m,
	}
	if cfg.Adapter.HTTPAddress != "" {
		auth, err := adapter.NewHTTPAuthenticator(cfg.Adapter, log.WithComponent("adapter"))
		if err != nil {
			_ = a.close()
			return nil, fmt.Errorf("create http authenticator: %w", err)
		}
		opts.Authenticator = auth
	}
	a.engine = engine.New(a.conn, credentials, opts, log.WithComponent("engine"))

	console := NewConsole(a.engine, in, out, log.WithComponent("console"))

	var metricsServer workers.Worker
	if cfg.Metrics.Address != "" {
		srv, err := server.NewHTTPServer(cfg.Metrics.Address, metrics.Handler(reg), log.WithComponent("metrics"))
		if err != nil {
			_ = a.close()
			return nil, fmt.Errorf("create metrics server: %w", err)
		}
		metricsServer = srv
	}

	a.workers = workers.New(
		workers.Func(a.engine.Run),
		workers.Func(func(ctx context.Context) error { return a.conn.Run(ctx, a.engine) }),
		console,
		metricsServer,
	)

	return a, nil
}

// Run blocks until the console quits, a worker fails or ctx is cancelled,
// then releases the credential store.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("client started")
	err := a.workers.Run(a.logger.WithContext(ctx))
	if closeErr := a.close(); closeErr != nil {
		a.logger.Err(closeErr).Msg("error releasing resources")
	}
	a.logger.Info().Msg("client stopped")
	return err
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
