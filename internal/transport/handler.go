package transport

// Handler receives connection events. All methods are called from the
// goroutine running [Manager.Run], one at a time, and must not block for
// long.
type Handler interface {
	// OnOpen is called each time a connection is established.
	OnOpen()
	// OnMessage is called with every binary frame received.
	OnMessage(frame []byte)
	// OnReconnectAttempt is called before reconnect attempt n (1-based).
	OnReconnectAttempt(n int)
	// OnExhausted is called once the reconnect budget is spent.
	OnExhausted()
	// OnClose is called once when the manager stops.
	OnClose()
	// OnError reports a failed dial or a lost connection.
	OnError(err error)
}
