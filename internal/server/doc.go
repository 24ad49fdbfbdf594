// Package server runs the client's optional HTTP endpoints.
//
// The only endpoint today is the Prometheus scrape handler. The server is
// started and stopped as a worker: Run blocks until the context is cancelled
// and then shuts the listener down gracefully.
package server
