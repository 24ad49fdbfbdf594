// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport maintains the duplex websocket connection to the feed
// server.
//
// A [Manager] dials the server, forwards inbound binary frames to a
// [Handler] and reconnects with exponential backoff when the connection
// drops. Sending is fire-and-forget: frames offered while the connection is
// not open are dropped, never queued or replayed.
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/internal/metrics"
)

// Options configures a [Manager].
type Options struct {
	// URL of the websocket endpoint.
	URL string
	// AttemptTimeout bounds a single dial and a single write.
	AttemptTimeout time.Duration
	// MaxAttempts is the number of failed reconnects tolerated before the
	// manager enters PhaseExhausted.
	MaxAttempts int
	// BackoffBase is the delay before the first reconnect attempt.
	BackoffBase time.Duration
	// BackoffMax caps the delay between attempts.
	BackoffMax time.Duration

	// Dialer defaults to a copy of websocket.DefaultDialer.
	Dialer *websocket.Dialer
	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Manager owns one logical connection. It is safe for concurrent use; Run
// must be called at most once.
type Manager struct {
	opts   Options
	dialer *websocket.Dialer
	logger *logger.Logger

	mu    sync.Mutex
	phase Phase
	conn  *websocket.Conn

	reconnect chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

// New creates a Manager in PhaseConnecting. No connection is made until Run.
func New(opts Options, logger *logger.Logger) *Manager {
	base := opts.Dialer
	if base == nil {
		base = websocket.DefaultDialer
	}
	dialer := new(websocket.Dialer)
	*dialer = *base
	dialer.HandshakeTimeout = opts.AttemptTimeout
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	m := &Manager{
		opts:      opts,
		dialer:    dialer,
		logger:    logger,
		phase:     PhaseConnecting,
		reconnect: make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
	opts.Metrics.SetPhase(PhaseConnecting.String(), allPhaseNames())
	return m
}

// Phase returns the current phase.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Send writes frame as one binary message. It reports false, and drops the
// frame, when the connection is not open or the write fails.
func (m *Manager) Send(frame []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseOpen || m.conn == nil {
		m.opts.Metrics.FrameDropped()
		m.logger.Debug().Str("phase", m.phase.String()).Msg("frame dropped: connection not open")
		return false
	}

	if m.opts.AttemptTimeout > 0 {
		_ = m.conn.SetWriteDeadline(time.Now().Add(m.opts.AttemptTimeout))
	}
	if err := m.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		m.opts.Metrics.FrameDropped()
		m.logger.Warn().Err(err).Msg("frame dropped: write failed")
		return false
	}

	m.opts.Metrics.FrameSent()
	return true
}

// Reconnect restarts connecting after the reconnect budget was exhausted.
// It reports false and does nothing in any other phase.
func (m *Manager) Reconnect() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseExhausted {
		return false
	}
	m.setPhaseLocked(PhaseConnecting)

	select {
	case m.reconnect <- struct{}{}:
	default:
	}
	return true
}

// Close moves the manager to PhaseClosed and tears down the connection.
// Run returns shortly after. Close is idempotent.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.setPhaseLocked(PhaseClosed)
		if m.conn != nil {
			_ = m.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = m.conn.Close()
			m.conn = nil
		}
		m.mu.Unlock()

		close(m.closed)
	})
}

// Run connects and keeps the connection alive until ctx is cancelled or
// Close is called, delivering events to h. It always returns nil once
// stopped; h.OnClose is the last event.
func (m *Manager) Run(ctx context.Context, h Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-m.closed:
			cancel()
		case <-ctx.Done():
		}
	}()

	defer func() {
		m.Close()
		h.OnClose()
		m.logger.Info().Msg("connection manager stopped")
	}()

	attempt := 0
	for {
		if m.stopped(ctx) {
			return nil
		}

		if attempt > 0 {
			if !m.sleep(ctx, m.backoff(attempt)) {
				return nil
			}
			m.opts.Metrics.ReconnectAttempt()
			m.logger.Info().Int("attempt", attempt).Msg("reconnecting")
			h.OnReconnectAttempt(attempt)
		}

		conn, err := m.dial(ctx)
		if err != nil {
			if m.stopped(ctx) {
				return nil
			}
			h.OnError(err)

			if attempt >= m.opts.MaxAttempts {
				if !m.exhausted(ctx, h) {
					return nil
				}
				attempt = 0
				continue
			}
			if !m.setPhase(PhaseReconnecting) {
				return nil
			}
			attempt++
			continue
		}

		if !m.open(conn) {
			_ = conn.Close()
			return nil
		}
		attempt = 0
		m.logger.Info().Str("url", m.opts.URL).Msg("connection open")
		h.OnOpen()

		err = m.serve(ctx, conn, h)
		if m.stopped(ctx) {
			return nil
		}
		m.logger.Warn().Err(err).Msg("connection lost")
		h.OnError(err)

		if !m.setPhase(PhaseReconnecting) {
			return nil
		}
		attempt = 1
	}
}

func (m *Manager) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx := ctx
	if m.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, m.opts.AttemptTimeout)
		defer cancel()
	}

	conn, resp, err := m.dialer.DialContext(dialCtx, m.opts.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		m.logger.Debug().Err(err).Str("url", m.opts.URL).Msg("dial failed")
		return nil, fmt.Errorf("%w: %v", ErrDial, err)
	}
	return conn, nil
}

// open publishes conn as the live connection unless the manager was closed
// in the meantime.
func (m *Manager) open(conn *websocket.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseClosed {
		return false
	}
	m.conn = conn
	m.setPhaseLocked(PhaseOpen)
	return true
}

// serve reads frames until the connection fails.
func (m *Manager) serve(ctx context.Context, conn *websocket.Conn, h Handler) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			m.mu.Lock()
			if m.conn == conn {
				m.conn = nil
			}
			m.mu.Unlock()
			_ = conn.Close()
			return fmt.Errorf("%w: %v", ErrConnectionLost, err)
		}

		if typ != websocket.BinaryMessage {
			m.logger.Debug().Int("type", typ).Msg("ignoring non-binary message")
			continue
		}
		m.opts.Metrics.FrameReceived()
		h.OnMessage(data)
	}
}

// exhausted parks the manager until Reconnect is called. It reports false
// when the manager should stop instead.
func (m *Manager) exhausted(ctx context.Context, h Handler) bool {
	if !m.setPhase(PhaseExhausted) {
		return false
	}
	m.logger.Warn().Int("attempt", m.opts.MaxAttempts).Msg("reconnect attempts exhausted")
	h.OnExhausted()

	select {
	case <-m.reconnect:
		m.logger.Info().Msg("reconnect requested")
		return true
	case <-ctx.Done():
		return false
	}
}

func (m *Manager) stopped(ctx context.Context) bool {
	select {
	case <-m.closed:
		return true
	default:
		return ctx.Err() != nil
	}
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// backoff returns the delay before reconnect attempt n: BackoffBase doubled
// n-1 times, capped at BackoffMax.
func (m *Manager) backoff(n int) time.Duration {
	if n < 1 || m.opts.BackoffBase <= 0 {
		return 0
	}
	shift := n - 1
	if shift > 30 {
		shift = 30
	}
	d := m.opts.BackoffBase * time.Duration(1<<shift)
	if m.opts.BackoffMax > 0 && (d > m.opts.BackoffMax || d < 0) {
		d = m.opts.BackoffMax
	}
	return d
}

func (m *Manager) setPhase(p Phase) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setPhaseLocked(p)
}

// setPhaseLocked never leaves PhaseClosed. It must be called with mu held.
func (m *Manager) setPhaseLocked(p Phase) bool {
	if m.phase == PhaseClosed {
		return p == PhaseClosed
	}
	if m.phase != p {
		m.logger.Debug().Str("from", m.phase.String()).Str("phase", p.String()).Msg("phase change")
	}
	m.phase = p
	m.opts.Metrics.SetPhase(p.String(), allPhaseNames())
	return true
}
