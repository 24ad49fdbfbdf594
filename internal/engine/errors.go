package engine

import "errors"

// ErrAlreadyRunning is returned by Run when the event loop is already active.
var ErrAlreadyRunning = errors.New("engine is already running")
