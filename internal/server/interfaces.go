package server

import "context"

// Server defines the lifecycle contract for servers managed by this package.
//
// Implementations block in Run until ctx is cancelled or the listener fails,
// and release their resources before returning.
type Server interface {
	// Run starts serving requests and blocks until the server stops.
	Run(ctx context.Context) error
}
