package engine

import (
	"context"

	"github.com/MKhiriev/go-feed-client/internal/transport"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

// Connection is the part of the connection manager the engine drives.
// [*transport.Manager] implements it.
type Connection interface {
	// Send offers frame for delivery and reports whether it was written.
	Send(frame []byte) bool
	// Phase returns the current connection phase.
	Phase() transport.Phase
	// Reconnect leaves the exhausted phase. It reports false in any other
	// phase.
	Reconnect() bool
}

// Authenticator delivers a login or registration frame outside the
// websocket and returns the server's response frame.
type Authenticator interface {
	Authenticate(ctx context.Context, frame []byte) ([]byte, error)
}

// IDGenerator produces identifiers for pending intents.
type IDGenerator interface {
	Generate() string
}
