package engine

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-feed-client/internal/protocol"
	"github.com/MKhiriev/go-feed-client/internal/store"
	"github.com/MKhiriev/go-feed-client/internal/transport"
)

var _ transport.Handler = (*Engine)(nil)

// OnOpen resumes the stored session, if any, on every new connection.
func (e *Engine) OnOpen() {
	e.post(func(ctx context.Context) {
		e.setPhase(transport.PhaseOpen)

		// responses to votes sent on a previous connection will never arrive
		if len(e.pending) > 0 {
			e.pending = nil
			e.dirty = true
		}

		token, err := e.store.Get(ctx)
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			e.logger.Debug().Msg("no stored session, staying logged out")
			e.clearSession(ctx)
			if e.st.authenticated {
				e.st.authenticated = false
				e.dirty = true
			}
			return
		case err != nil:
			e.logger.Err(err).Str("func", "*Engine.OnOpen").Msg("error reading stored session")
			return
		}

		frame, err := protocol.EncodeLoginWithToken(token)
		if err != nil {
			e.logger.Err(err).Str("func", "*Engine.OnOpen").Msg("error encoding token login")
			return
		}
		e.send(protocol.KindLoginWithToken, frame)
	})
}

// OnMessage queues an inbound frame for reconciliation.
func (e *Engine) OnMessage(frame []byte) {
	e.post(func(ctx context.Context) {
		e.dispatch(ctx, frame)
	})
}

// OnReconnectAttempt records that the connection is being re-established.
func (e *Engine) OnReconnectAttempt(n int) {
	e.post(func(context.Context) {
		e.logger.Debug().Int("attempt", n).Msg("reconnect attempt")
		e.setPhase(transport.PhaseReconnecting)
	})
}

// OnExhausted raises a notice that the connection gave up.
func (e *Engine) OnExhausted() {
	e.post(func(context.Context) {
		e.setPhase(transport.PhaseExhausted)
		e.raise(Notice{
			Kind:    NoticeTransport,
			Message: "connection lost, reconnect attempts exhausted",
		})
	})
}

// OnClose records the terminal phase.
func (e *Engine) OnClose() {
	e.post(func(context.Context) {
		e.setPhase(transport.PhaseClosed)
	})
}

// OnError records a dropped connection or a failed dial.
func (e *Engine) OnError(err error) {
	e.post(func(context.Context) {
		e.logger.Debug().Err(err).Msg("transport error")
		if e.st.phase == transport.PhaseOpen || e.st.phase == transport.PhaseConnecting {
			e.setPhase(transport.PhaseReconnecting)
		}
	})
}
