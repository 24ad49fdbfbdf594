package transport

import "errors"

var (
	// ErrConnectionLost wraps the read error of a connection that dropped.
	ErrConnectionLost = errors.New("connection lost")

	// ErrDial wraps a failed connection attempt.
	ErrDial = errors.New("dial failed")
)
